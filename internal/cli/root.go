// Package cli implements attendancectl, which runs the calendar and roster
// computations over JSON or YAML files without a database.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/currency"
	attendanceService "github.com/cmlabs-hris/attendance-engine-go/internal/service/attendance"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type globalOptions struct {
	timezone       string
	currencySymbol string
	absentRate     string
	warningRate    string
}

func (o *globalOptions) settings() (attendanceService.Settings, error) {
	loc, err := time.LoadLocation(o.timezone)
	if err != nil {
		return attendanceService.Settings{}, fmt.Errorf("invalid --timezone: %w", err)
	}

	rates := attendance.DefaultDeductionRates()
	if o.absentRate != "" {
		if rates.PerAbsentDay, err = decimal.NewFromString(o.absentRate); err != nil {
			return attendanceService.Settings{}, fmt.Errorf("invalid --absent-rate: %w", err)
		}
	}
	if o.warningRate != "" {
		if rates.PerWarningDay, err = decimal.NewFromString(o.warningRate); err != nil {
			return attendanceService.Settings{}, fmt.Errorf("invalid --warning-rate: %w", err)
		}
	}
	if err := rates.Validate(); err != nil {
		return attendanceService.Settings{}, err
	}

	return attendanceService.Settings{
		Location: loc,
		Rates:    rates,
		Currency: currency.NewFormatter(o.currencySymbol),
	}, nil
}

// NewRootCommand builds the attendancectl command tree. now supplies the
// default month and day.
func NewRootCommand(out io.Writer, now func() time.Time) *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:           "attendancectl",
		Short:         "Attendance statistics and calendars from record files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)

	rootCmd.PersistentFlags().StringVar(&opts.timezone, "timezone", "Local", "IANA time zone that decides each record's calendar day")
	rootCmd.PersistentFlags().StringVar(&opts.currencySymbol, "currency", "₹", "Currency symbol for deductions")
	rootCmd.PersistentFlags().StringVar(&opts.absentRate, "absent-rate", "", "Deduction per absent day (default 1000)")
	rootCmd.PersistentFlags().StringVar(&opts.warningRate, "warning-rate", "", "Deduction per warning day (default 500)")

	rootCmd.AddCommand(calendarCmd(opts, now))
	rootCmd.AddCommand(rosterCmd(opts, now))

	return rootCmd
}

func calendarCmd(opts *globalOptions, now func() time.Time) *cobra.Command {
	var recordsPath, rosterPath, employeeUsername, month string

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Monthly statistics and the 6x7 calendar grid",
		Long: "Without --employee the file must hold one employee's records. With --employee " +
			"only that employee's records are used and, when --roster is given, the employee must be on it.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := opts.settings()
			if err != nil {
				return err
			}

			raws, err := LoadRecords(recordsPath)
			if err != nil {
				return err
			}

			if employeeUsername == "" {
				svc := attendanceService.NewCalendarService(&fileRecordRepository{}, &fileEmployeeRepository{}, settings, now)
				resp, err := svc.ComputeMonthlyCalendar(cmd.Context(), attendance.ComputeCalendarRequest{
					Month:   month,
					Records: raws,
				})
				if err != nil {
					return err
				}
				return renderCalendar(cmd.OutOrStdout(), resp, "")
			}

			records, err := attendance.ParseRecords(raws, settings.Location)
			if err != nil {
				return err
			}

			roster := []employee.Employee{{Username: employeeUsername, DisplayName: employeeUsername}}
			if rosterPath != "" {
				if roster, err = LoadRoster(rosterPath); err != nil {
					return err
				}
			}

			svc := attendanceService.NewCalendarService(
				&fileRecordRepository{records: records},
				&fileEmployeeRepository{roster: roster},
				settings,
				now,
			)
			resp, err := svc.GetMonthlyCalendar(cmd.Context(), attendance.MonthlyCalendarRequest{
				EmployeeUsername: employeeUsername,
				Month:            month,
			})
			if err != nil {
				return err
			}

			label := employeeUsername
			if resp.Employee != nil && resp.Employee.DisplayName != employeeUsername {
				label = fmt.Sprintf("%s (%s)", resp.Employee.DisplayName, employeeUsername)
			}
			return renderCalendar(cmd.OutOrStdout(), resp, label)
		},
	}

	cmd.Flags().StringVar(&recordsPath, "records", "", "Attendance records file (.json, .yaml)")
	cmd.Flags().StringVar(&rosterPath, "roster", "", "Optional roster file (.json, .yaml)")
	cmd.Flags().StringVar(&employeeUsername, "employee", "", "Only use records of this employee")
	cmd.Flags().StringVar(&month, "month", "", "Month as YYYY-MM (default current month)")
	_ = cmd.MarkFlagRequired("records")

	return cmd
}

func rosterCmd(opts *globalOptions, now func() time.Time) *cobra.Command {
	var recordsPath, rosterPath, date string

	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Every employee's status for one day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := opts.settings()
			if err != nil {
				return err
			}

			raws, err := LoadRecords(recordsPath)
			if err != nil {
				return err
			}
			records, err := attendance.ParseRecords(raws, settings.Location)
			if err != nil {
				return err
			}

			roster, err := LoadRoster(rosterPath)
			if err != nil {
				return err
			}

			svc := attendanceService.NewCalendarService(
				&fileRecordRepository{records: records},
				&fileEmployeeRepository{roster: roster},
				settings,
				now,
			)
			resp, err := svc.GetDailyRoster(cmd.Context(), attendance.DailyRosterRequest{Date: date})
			if err != nil {
				return err
			}

			return renderRoster(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringVar(&recordsPath, "records", "", "Attendance records file (.json, .yaml)")
	cmd.Flags().StringVar(&rosterPath, "roster", "", "Roster file (.json, .yaml)")
	cmd.Flags().StringVar(&date, "date", "", "Day as YYYY-MM-DD (default today)")
	_ = cmd.MarkFlagRequired("records")
	_ = cmd.MarkFlagRequired("roster")

	return cmd
}

// Execute runs the command tree with ctx.
func Execute(ctx context.Context, out io.Writer, args []string, now func() time.Time) error {
	rootCmd := NewRootCommand(out, now)
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}
