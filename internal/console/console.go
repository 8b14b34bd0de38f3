package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"salonadmin/internal/api"
	"salonadmin/internal/calendar"
	"salonadmin/internal/export"
	"salonadmin/internal/models"
	"salonadmin/internal/service"

	"github.com/rs/zerolog"
)

// Console is the thin view layer over the core: it parses commands, runs the
// role guard before any protected fetch, and renders results as text. All
// state and policy live in the services it calls.
type Console struct {
	auth     *service.AuthManager
	workflow *service.BookingWorkflow
	client   *api.Client
	exporter *export.Exporter
	logger   zerolog.Logger

	in  *bufio.Reader
	out io.Writer
}

func New(auth *service.AuthManager, workflow *service.BookingWorkflow, client *api.Client, exporter *export.Exporter, in io.Reader, out io.Writer, logger *zerolog.Logger) *Console {
	base := zerolog.Nop()
	if logger != nil {
		base = logger.With().Str("component", "console").Logger()
	}
	return &Console{
		auth:     auth,
		workflow: workflow,
		client:   client,
		exporter: exporter,
		logger:   base,
		in:       bufio.NewReader(in),
		out:      out,
	}
}

// Confirm asks the operator to approve a status transition, naming the
// target status. Used as the workflow's confirmation hook.
func (c *Console) Confirm(booking *models.Booking, targetLabel string) bool {
	fmt.Fprintf(c.out, "Change booking #%d (%s %s, %s) to %q? [y/N]: ",
		booking.ID, booking.BookingDate, booking.StartTime, models.StatusLabel(booking.Status), targetLabel)

	line, err := c.in.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func (c *Console) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		c.usage()
		return nil
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		return c.cmdLogin(ctx, rest)
	case "logout":
		c.auth.Logout(ctx)
		fmt.Fprintln(c.out, "Logged out.")
		return nil
	case "profile":
		return c.cmdProfile(ctx)
	case "register":
		return c.cmdRegister(ctx, rest)
	case "bookings":
		return c.cmdBookings(ctx)
	case "transition":
		return c.cmdTransition(ctx, rest)
	case "cancel":
		return c.cmdCancel(ctx, rest)
	case "calendar":
		return c.cmdCalendar(ctx, rest)
	case "export":
		return c.cmdExport(ctx)
	case "stats":
		return c.cmdStats(ctx)
	case "revenue":
		return c.cmdRevenue(ctx, rest)
	case "services":
		return c.cmdServices(ctx)
	case "stylists":
		return c.cmdStylists(ctx)
	case "users":
		return c.cmdUsers(ctx, rest)
	default:
		c.usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (c *Console) usage() {
	fmt.Fprintln(c.out, `Usage: salon-admin <command>

Commands:
  login <email>              log in (password read from stdin)
  logout                     clear the stored session
  profile                    show the current user
  register <name> <email> <phone>   create an account (password from stdin)
  bookings                   list bookings
  transition <id> <status>   change a booking status (with confirmation)
  cancel <id>                cancel a booking (with confirmation)
  calendar [YYYY-MM-DD]      show bookings as calendar events
  export                     write bookings to an XLSX file
  stats                      show the dashboard statistics
  revenue [start] [end]      show the revenue report
  services                   list services
  stylists                   list stylists
  users [limit] [offset]     list customer accounts`)
}

// requireAdmin runs before every protected fetch. Guard failures never reach
// the backend.
func (c *Console) requireAdmin() error {
	err := c.auth.RequireRole(models.RoleAdmin)
	switch {
	case errors.Is(err, service.ErrLoginRequired):
		return errors.New("not logged in: run `salon-admin login <email>` first")
	case errors.Is(err, service.ErrRoleForbidden):
		return errors.New("this command requires an admin account")
	}
	return err
}

func (c *Console) readSecret(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	line, err := c.in.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *Console) cmdLogin(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: login <email>")
	}

	password, err := c.readSecret("Password: ")
	if err != nil {
		return err
	}

	user, err := c.auth.Login(ctx, args[0], password)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Logged in as %s (%s).\n", user.Name, user.Role)
	return nil
}

func (c *Console) cmdProfile(ctx context.Context) error {
	if !c.auth.IsAuthenticated() {
		return errors.New("not logged in")
	}

	user, err := c.auth.RefreshProfile(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "#%d %s <%s> role=%s\n", user.ID, user.Name, user.Email, user.Role)
	return nil
}

func (c *Console) cmdRegister(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return errors.New("usage: register <name> <email> <phone>")
	}

	password, err := c.readSecret("Password: ")
	if err != nil {
		return err
	}

	user, err := c.auth.Register(ctx, models.RegisterRequest{
		Name:     args[0],
		Email:    args[1],
		Phone:    args[2],
		Password: password,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Created account #%d %s.\n", user.ID, user.Email)
	return nil
}

func (c *Console) cmdBookings(ctx context.Context) error {
	if err := c.requireAdmin(); err != nil {
		return err
	}

	bookings, err := c.client.ListBookings(ctx)
	if err != nil {
		return err
	}

	if len(bookings) == 0 {
		fmt.Fprintln(c.out, "No bookings.")
		return nil
	}

	for i := range bookings {
		c.printBooking(&bookings[i])
	}
	return nil
}

func (c *Console) printBooking(b *models.Booking) {
	customer := b.CustomerName()
	if customer == "" {
		customer = "-"
	}
	stylist := "-"
	if b.Stylist != nil {
		stylist = b.Stylist.Name
	}

	next := models.NextStatuses(b.Status)
	nextInfo := ""
	if len(next) > 0 {
		nextInfo = " -> " + strings.Join(next, "|")
	}

	fmt.Fprintf(c.out, "#%-5d %s %s-%s  %-20s %-15s %8.0f  [%s]%s\n",
		b.ID, b.BookingDate, b.StartTime, b.EndTime, customer, stylist, b.Price,
		models.StatusLabel(b.Status), nextInfo)
}

func (c *Console) cmdTransition(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: transition <id> <pending|confirmed|completed|cancelled>")
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid booking id %q", args[0])
	}

	if err := c.requireAdmin(); err != nil {
		return err
	}

	updated, err := c.workflow.Transition(ctx, id, args[1])
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Booking #%d is now %s.\n", updated.ID, models.StatusLabel(updated.Status))
	return nil
}

func (c *Console) cmdCancel(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: cancel <id>")
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid booking id %q", args[0])
	}

	if err := c.requireAdmin(); err != nil {
		return err
	}

	updated, err := c.workflow.Cancel(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Booking #%d cancelled.\n", updated.ID)
	return nil
}

func (c *Console) cmdCalendar(ctx context.Context, args []string) error {
	if err := c.requireAdmin(); err != nil {
		return err
	}

	bookings, err := c.client.ListBookings(ctx)
	if err != nil {
		return err
	}

	events := calendar.Project(bookings)
	day := time.Now()
	if len(args) == 1 {
		parsed, err := time.ParseInLocation("2006-01-02", args[0], time.Local)
		if err != nil {
			return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", args[0])
		}
		day = parsed
	}

	fmt.Fprintf(c.out, "%d events total, %d on %s\n\n",
		len(events), calendar.CountOnDay(events, day), day.Format("2006-01-02"))

	for _, ev := range events {
		fmt.Fprintf(c.out, "%s - %s  %-40s [%s/%s]\n",
			ev.Start.Format("2006-01-02 15:04"), ev.End.Format("15:04"), ev.Title, ev.Status, ev.Color)
	}
	return nil
}

func (c *Console) cmdExport(ctx context.Context) error {
	if err := c.requireAdmin(); err != nil {
		return err
	}

	bookings, err := c.client.ListBookings(ctx)
	if err != nil {
		return err
	}

	path, err := c.exporter.BookingsToExcel(bookings)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Exported %d bookings to %s\n", len(bookings), path)
	return nil
}

func (c *Console) cmdStats(ctx context.Context) error {
	if err := c.requireAdmin(); err != nil {
		return err
	}

	stats, err := c.client.DashboardStats(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Bookings  today=%d week=%d month=%d\n", stats.TodayBookings, stats.WeekBookings, stats.MonthBookings)
	fmt.Fprintf(c.out, "Revenue   today=%.0f month=%.0f\n", stats.TodayRevenue, stats.MonthRevenue)
	for _, svc := range stats.PopularServices {
		fmt.Fprintf(c.out, "  service %-25s %d bookings\n", svc.Name, svc.Count)
	}
	for _, stylist := range stats.TopStylists {
		revenue := "-"
		if stylist.Revenue != nil {
			revenue = fmt.Sprintf("%.0f", *stylist.Revenue)
		}
		fmt.Fprintf(c.out, "  stylist %-25s %d bookings, revenue %s\n", stylist.Name, stylist.BookingCount, revenue)
	}
	return nil
}

func (c *Console) cmdRevenue(ctx context.Context, args []string) error {
	if err := c.requireAdmin(); err != nil {
		return err
	}

	var start, end string
	if len(args) > 0 {
		start = args[0]
	}
	if len(args) > 1 {
		end = args[1]
	}

	rows, err := c.client.RevenueReport(ctx, start, end)
	if err != nil {
		return err
	}

	for _, row := range rows {
		fmt.Fprintf(c.out, "%s  %10.0f  (%d bookings)\n", row.Date, row.Revenue, row.BookingsCount)
	}
	return nil
}

func (c *Console) cmdServices(ctx context.Context) error {
	if err := c.requireAdmin(); err != nil {
		return err
	}

	services, err := c.client.ListServices(ctx)
	if err != nil {
		return err
	}

	for _, svc := range services {
		active := " "
		if svc.IsActive {
			active = "*"
		}
		fmt.Fprintf(c.out, "%s #%-4d %-30s %3d min  %8.0f  %s\n", active, svc.ID, svc.Name, svc.Duration, svc.Price, svc.Category)
	}
	return nil
}

func (c *Console) cmdStylists(ctx context.Context) error {
	if err := c.requireAdmin(); err != nil {
		return err
	}

	stylists, err := c.client.ListStylists(ctx)
	if err != nil {
		return err
	}

	for _, stylist := range stylists {
		fmt.Fprintf(c.out, "#%-4d %-20s %s\n", stylist.ID, stylist.Name, stylist.Specialty)

		schedules, err := c.client.ListSchedules(ctx, stylist.ID)
		if err != nil {
			fmt.Fprintf(c.out, "      schedules unavailable: %v\n", err)
			continue
		}
		for _, s := range schedules {
			fmt.Fprintf(c.out, "      day %d  %s-%s\n", s.DayOfWeek, s.StartTime, s.EndTime)
		}
	}
	return nil
}

func (c *Console) cmdUsers(ctx context.Context, args []string) error {
	if err := c.requireAdmin(); err != nil {
		return err
	}

	limit, offset := 100, 0
	if len(args) > 0 {
		if v, err := strconv.Atoi(args[0]); err == nil {
			limit = v
		}
	}
	if len(args) > 1 {
		if v, err := strconv.Atoi(args[1]); err == nil {
			offset = v
		}
	}

	page, err := c.client.ListUsers(ctx, limit, offset)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "%d users (showing %d from offset %d)\n", page.Total, len(page.Users), page.Offset)
	for _, user := range page.Users {
		marker := " "
		if user.IsAdmin() {
			marker = "*"
		}
		fmt.Fprintf(c.out, "%s #%-5d %-25s %-30s %s\n", marker, user.ID, user.Name, user.Email, user.Role)
	}
	return nil
}
