package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"smartride-portal/internal/data/entity"
	"smartride-portal/internal/dto/request"
	"smartride-portal/internal/dto/response"
	"smartride-portal/internal/gateway"
	"smartride-portal/internal/lifecycle"
	"smartride-portal/internal/listview"
	"smartride-portal/internal/revenue"
	"smartride-portal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Admin table names, in dashboard tab order.
const (
	TableUsers    = "users"
	TableRides    = "rides"
	TableBookings = "bookings"
	TablePayments = "payments"
	TableDisputes = "disputes"
)

var Tables = []string{TableUsers, TableRides, TableBookings, TablePayments, TableDisputes}

var (
	ErrUnknownTable = errors.New("unknown table")
	ErrRowNotFound  = errors.New("row not found")
	ErrNothingToPay = userError("No pending cash payment on this ride.")
	ErrDashboardEnd = userError("Dashboard was closed. Reload the page.")
)

type AdminService interface {
	Dashboard(ctx context.Context, session uuid.UUID) *response.AdminDashboard
	Table(ctx context.Context, session uuid.UUID, name string, q *request.TableQuery) (any, error)
	Refresh(ctx context.Context, session uuid.UUID, name string) (any, error)
	CloseTable(session uuid.UUID, name string) error

	BlockUser(ctx context.Context, session uuid.UUID, userID int64, confirm bool) (*response.ActionResult[any], error)
	VerifyDriver(ctx context.Context, session uuid.UUID, userID int64, confirm bool) (*response.ActionResult[any], error)
	ApproveBooking(ctx context.Context, session uuid.UUID, bookingID int64, confirm bool) (*response.ActionResult[any], error)
	RejectBooking(ctx context.Context, session uuid.UUID, bookingID int64, confirm bool) (*response.ActionResult[any], error)
	MarkPaymentPaid(ctx context.Context, session uuid.UUID, paymentID int64, confirm bool) (*response.ActionResult[any], error)
	MarkRidePaid(ctx context.Context, session uuid.UUID, rideID int64, confirm bool) (*response.ActionResult[any], error)
	WithdrawCommission(ctx context.Context, session uuid.UUID, confirm bool) (*response.ActionResult[*response.AdminDashboard], error)

	// Teardown stops and forgets every table of the session.
	Teardown(session uuid.UUID)
	// TeardownAll closes every open dashboard, on shutdown.
	TeardownAll()
	// StartSweeper tears down dashboards idle for longer than the
	// configured timeout until StopSweeper is called.
	StartSweeper(ctx context.Context)
	StopSweeper()
}

// adminTable is what the registry needs from a view regardless of its row type.
type adminTable interface {
	Mount(ctx context.Context)
	Unmount()
	Mounted() bool
	RefreshNow(ctx context.Context)
	SetQuery(q listview.Query)
	Query() listview.Query
	LastAccess() time.Time
	render(now time.Time) any
}

// boundTable ties a view to the function that renders its rows.
type boundTable[T, R any] struct {
	*listview.View[T]
	row func(item T, now time.Time) R
}

func (t *boundTable[T, R]) render(now time.Time) any {
	return response.NewTable(t.Resource(), t.Snapshot(), func(item T) R { return t.row(item, now) })
}

func bind[T, R any](v *listview.View[T], row func(T, time.Time) R) *boundTable[T, R] {
	return &boundTable[T, R]{View: v, row: row}
}

// dashboard is one admin session's set of tables.
type dashboard struct {
	users    *boundTable[gateway.AdminUser, response.UserRow]
	rides    *boundTable[gateway.AdminRide, response.RideRow]
	bookings *boundTable[gateway.Booking, response.BookingRow]
	payments *boundTable[gateway.Payment, response.PaymentRow]
	disputes *boundTable[gateway.Dispute, response.DisputeRow]

	created time.Time
	// closed is set under adminService.mu once the dashboard is torn down.
	closed bool
}

func (d *dashboard) table(name string) (adminTable, bool) {
	switch name {
	case TableUsers:
		return d.users, true
	case TableRides:
		return d.rides, true
	case TableBookings:
		return d.bookings, true
	case TablePayments:
		return d.payments, true
	case TableDisputes:
		return d.disputes, true
	}
	return nil, false
}

func (d *dashboard) all() []adminTable {
	return []adminTable{d.users, d.rides, d.bookings, d.payments, d.disputes}
}

func (d *dashboard) unmount() {
	for _, t := range d.all() {
		t.Unmount()
	}
}

func (d *dashboard) lastAccess() time.Time {
	last := d.created
	for _, t := range d.all() {
		if at := t.LastAccess(); at.After(last) {
			last = at
		}
	}
	return last
}

type adminService struct {
	gateway *gateway.Client
	config  utils.DashboardConfig
	log     *zap.Logger
	opts    []listview.PollerOption
	now     func() time.Time

	mu         sync.Mutex
	dashboards map[uuid.UUID]*dashboard
	sweeper    *listview.Poller
}

func NewAdminService(gw *gateway.Client, config utils.DashboardConfig, log *zap.Logger, opts ...listview.PollerOption) AdminService {
	if config.CommissionPct <= 0 {
		config.CommissionPct = revenue.DefaultCommissionPct
	}
	s := &adminService{
		gateway:    gw,
		config:     config,
		log:        log.With(zap.String("service", "admin")),
		opts:       opts,
		now:        time.Now,
		dashboards: make(map[uuid.UUID]*dashboard),
	}

	sweepEvery := config.IdleTimeout / 2
	if sweepEvery <= 0 {
		sweepEvery = time.Minute
	}
	s.sweeper = listview.NewPoller(sweepEvery, func(context.Context) { s.sweepIdle() }, opts...)
	return s
}

// ==================== TABLE SPECS ====================

func itoa(n int64) string { return strconv.FormatInt(n, 10) }

func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', 2, 64) }

func optFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return ftoa(*f)
}

func timestamp(t gateway.Timestamp) string {
	if t.IsZero() {
		return t.Raw
	}
	return t.Format(time.RFC3339)
}

func usersSpec() listview.Spec[gateway.AdminUser] {
	return listview.Spec[gateway.AdminUser]{
		Resource: TableUsers,
		ID:       func(u gateway.AdminUser) string { return itoa(u.ID) },
		Columns: map[string]func(gateway.AdminUser) string{
			"id":       func(u gateway.AdminUser) string { return itoa(u.ID) },
			"name":     func(u gateway.AdminUser) string { return u.Name },
			"email":    func(u gateway.AdminUser) string { return u.Email },
			"phone":    func(u gateway.AdminUser) string { return u.Phone },
			"role":     func(u gateway.AdminUser) string { return u.Role },
			"blocked":  func(u gateway.AdminUser) string { return strconv.FormatBool(u.Blocked) },
			"verified": func(u gateway.AdminUser) string { return strconv.FormatBool(u.Verified) },
		},
		SearchFields: []string{"name", "email", "role"},
		DefaultSort:  "id",
		FetchError:   "Failed to load users",
	}
}

func ridesSpec() listview.Spec[gateway.AdminRide] {
	return listview.Spec[gateway.AdminRide]{
		Resource: TableRides,
		ID:       func(r gateway.AdminRide) string { return itoa(r.RideID) },
		Columns: map[string]func(gateway.AdminRide) string{
			"rideId":            func(r gateway.AdminRide) string { return itoa(r.RideID) },
			"driverName":        func(r gateway.AdminRide) string { return r.DriverName },
			"source":            func(r gateway.AdminRide) string { return r.Source },
			"destination":       func(r gateway.AdminRide) string { return r.Destination },
			"departureDatetime": func(r gateway.AdminRide) string { return timestamp(r.DepartureDatetime) },
			"seatsTotal":        func(r gateway.AdminRide) string { return strconv.Itoa(r.SeatsTotal) },
			"seatsAvailable":    func(r gateway.AdminRide) string { return strconv.Itoa(r.SeatsAvailable) },
			"price":             func(r gateway.AdminRide) string { return ftoa(r.Price) },
			"revenue":           func(r gateway.AdminRide) string { return ftoa(revenue.Derive(r.Record)) },
		},
		SearchFields: []string{"source", "destination", "driverName"},
		DefaultSort:  "rideId",
		FetchError:   "Failed to load rides",
	}
}

func bookingsSpec() listview.Spec[gateway.Booking] {
	return listview.Spec[gateway.Booking]{
		Resource: TableBookings,
		ID:       func(b gateway.Booking) string { return itoa(b.BookingID) },
		Columns: map[string]func(gateway.Booking) string{
			"bookingId":     func(b gateway.Booking) string { return itoa(b.BookingID) },
			"rideId":        func(b gateway.Booking) string { return itoa(b.RideID) },
			"passengerName": func(b gateway.Booking) string { return b.PassengerName },
			"driverName":    func(b gateway.Booking) string { return b.DriverName },
			"source":        func(b gateway.Booking) string { return b.Source },
			"destination":   func(b gateway.Booking) string { return b.Destination },
			"seatsBooked":   func(b gateway.Booking) string { return strconv.Itoa(b.SeatsBooked) },
			"totalPrice":    func(b gateway.Booking) string { return optFloat(b.TotalPrice) },
			"bookingStatus": func(b gateway.Booking) string { return b.BookingStatus },
			"paymentStatus": func(b gateway.Booking) string { return b.PaymentStatus },
		},
		SearchFields: []string{"passengerName", "driverName", "source", "destination"},
		DefaultSort:  "bookingId",
		FetchError:   "Failed to fetch bookings",
	}
}

func paymentsSpec() listview.Spec[gateway.Payment] {
	return listview.Spec[gateway.Payment]{
		Resource: TablePayments,
		ID:       func(p gateway.Payment) string { return itoa(p.PaymentID) },
		Columns: map[string]func(gateway.Payment) string{
			"paymentId":     func(p gateway.Payment) string { return itoa(p.PaymentID) },
			"bookingId":     func(p gateway.Payment) string { return itoa(p.BookingID) },
			"passengerName": func(p gateway.Payment) string { return p.PassengerName },
			"driverName":    func(p gateway.Payment) string { return p.DriverName },
			"amount":        func(p gateway.Payment) string { return ftoa(p.Amount) },
			"paymentMethod": func(p gateway.Payment) string { return p.PaymentMethod },
			"paymentStatus": func(p gateway.Payment) string { return p.PaymentStatus },
		},
		SearchFields: []string{"passengerName", "driverName", "paymentId"},
		DefaultSort:  "paymentId",
		FetchError:   "Failed to fetch payments",
	}
}

func disputesSpec() listview.Spec[gateway.Dispute] {
	return listview.Spec[gateway.Dispute]{
		Resource: TableDisputes,
		ID:       func(d gateway.Dispute) string { return itoa(d.Key()) },
		Columns: map[string]func(gateway.Dispute) string{
			"disputeId":     func(d gateway.Dispute) string { return itoa(d.Key()) },
			"bookingId":     func(d gateway.Dispute) string { return itoa(d.Booking()) },
			"rideId":        func(d gateway.Dispute) string { return itoa(d.RideID) },
			"passengerName": func(d gateway.Dispute) string { return d.PassengerName },
			"driverName":    func(d gateway.Dispute) string { return d.DriverName },
			"status":        func(d gateway.Dispute) string { return d.State() },
		},
		SearchFields: []string{"bookingId", "rideId", "passengerName", "driverName"},
		DefaultSort:  "disputeId",
		FetchError:   "Failed to fetch disputes",
	}
}

// ==================== ROWS ====================

func userRow(u gateway.AdminUser, _ time.Time) response.UserRow {
	actions := []string{}
	if !u.Blocked {
		actions = append(actions, "block")
	}
	if strings.EqualFold(u.Role, string(entity.RoleDriver)) && !u.Verified {
		actions = append(actions, "verify")
	}
	return response.UserRow{AdminUser: u, Actions: actions}
}

func (s *adminService) rideRow(r gateway.AdminRide, now time.Time) response.RideRow {
	rev := revenue.Derive(r.Record)
	actions := []string{}
	if _, ok := pendingCashPayment(r.DriverRide, now); ok {
		actions = append(actions, string(lifecycle.ActionMarkPaid))
	}
	return response.RideRow{
		DriverRide: r.DriverRide,
		Revenue:    rev,
		Commission: rev * s.config.CommissionPct / 100,
		Actions:    actions,
	}
}

func bookingRow(b gateway.Booking, now time.Time) response.BookingRow {
	snap := lifecycle.FromBooking(b)
	view := lifecycle.Describe(snap, entity.RoleAdmin, now)

	actions := []string{}
	// The admin may answer a request in the driver's place.
	for _, a := range lifecycle.Actions(snap, entity.RoleDriver, now) {
		if a == lifecycle.ActionApprove || a == lifecycle.ActionReject {
			actions = append(actions, string(a))
		}
	}
	for _, a := range view.Actions {
		actions = append(actions, string(a))
	}
	return response.BookingRow{Booking: b, Lifecycle: view, Actions: actions}
}

func paymentRow(p gateway.Payment, _ time.Time) response.PaymentRow {
	actions := []string{}
	if strings.EqualFold(p.PaymentMethod, "CASH") && !strings.EqualFold(p.PaymentStatus, gateway.PaymentCompleted) {
		actions = append(actions, string(lifecycle.ActionMarkPaid))
	}
	return response.PaymentRow{Payment: p, Actions: actions}
}

func disputeRow(d gateway.Dispute, _ time.Time) response.DisputeRow {
	return response.DisputeRow{
		DisputeID:     d.Key(),
		BookingID:     d.Booking(),
		RideID:        d.RideID,
		PassengerName: d.PassengerName,
		DriverName:    d.DriverName,
		Status:        d.State(),
	}
}

// pendingCashPayment finds the first booking of the ride whose cash
// payment still waits for confirmation.
func pendingCashPayment(ride gateway.DriverRide, now time.Time) (int64, bool) {
	for _, b := range ride.Bookings {
		if lifecycle.Allows(lifecycle.FromRideBooking(ride.Ride, b), entity.RoleAdmin, now, lifecycle.ActionMarkPaid) {
			return *b.PaymentID, true
		}
	}
	return 0, false
}

// ==================== REGISTRY ====================

func (s *adminService) newDashboard() *dashboard {
	interval := s.config.PollInterval
	log := s.log

	return &dashboard{
		users: bind(listview.NewView(usersSpec(), s.gateway.AdminUsers, interval, log, s.opts...), userRow),
		rides: bind(listview.NewView(ridesSpec(), s.gateway.AdminRides, interval, log, s.opts...), s.rideRow),
		bookings: bind(listview.NewView(bookingsSpec(), s.gateway.AdminBookings, interval, log, s.opts...), bookingRow),
		payments: bind(listview.NewView(paymentsSpec(), s.gateway.AdminPayments, interval, log, s.opts...), paymentRow),
		disputes: bind(listview.NewView(disputesSpec(), s.gateway.AdminDisputes, interval, log, s.opts...), disputeRow),
		created:  s.now(),
	}
}

func (s *adminService) dashboard(session uuid.UUID) *dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.dashboards[session]
	if !ok {
		d = s.newDashboard()
		s.dashboards[session] = d
	}
	return d
}

func (s *adminService) lookup(session uuid.UUID, name string) (*dashboard, adminTable, error) {
	d := s.dashboard(session)
	t, ok := d.table(name)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownTable, name)
	}
	return d, t, nil
}

// mount starts t and undoes it when d was torn down meanwhile. Teardown
// marks d closed before unmounting, so either it sees the mounted table or
// this check sees the flag.
func (s *adminService) mount(ctx context.Context, d *dashboard, t adminTable) error {
	t.Mount(ctx)

	s.mu.Lock()
	closed := d.closed
	s.mu.Unlock()

	if closed {
		t.Unmount()
		return ErrDashboardEnd
	}
	return nil
}

func (s *adminService) Teardown(session uuid.UUID) {
	s.mu.Lock()
	d, ok := s.dashboards[session]
	delete(s.dashboards, session)
	if ok {
		d.closed = true
	}
	s.mu.Unlock()

	if !ok {
		return
	}
	d.unmount()
	s.log.Debug("Admin dashboard torn down")
}

func (s *adminService) TeardownAll() {
	s.mu.Lock()
	open := make([]*dashboard, 0, len(s.dashboards))
	for session, d := range s.dashboards {
		d.closed = true
		open = append(open, d)
		delete(s.dashboards, session)
	}
	s.mu.Unlock()

	for _, d := range open {
		d.unmount()
	}
	if len(open) > 0 {
		s.log.Info("Closed admin dashboards", zap.Int("count", len(open)))
	}
}

func (s *adminService) StartSweeper(ctx context.Context) {
	if s.config.IdleTimeout <= 0 {
		return
	}
	s.sweeper.Start(ctx)
}

func (s *adminService) StopSweeper() {
	s.sweeper.Stop()
}

func (s *adminService) sweepIdle() {
	cutoff := s.now().Add(-s.config.IdleTimeout)

	s.mu.Lock()
	var idle []uuid.UUID
	for session, d := range s.dashboards {
		if d.lastAccess().Before(cutoff) {
			idle = append(idle, session)
		}
	}
	s.mu.Unlock()

	for _, session := range idle {
		s.Teardown(session)
	}
	if len(idle) > 0 {
		s.log.Info("Closed idle admin dashboards", zap.Int("count", len(idle)))
	}
}

// ==================== READS ====================

func (s *adminService) Dashboard(ctx context.Context, session uuid.UUID) *response.AdminDashboard {
	s.dashboard(session)

	dash := &response.AdminDashboard{
		CommissionPct: s.config.CommissionPct,
		Tables:        Tables,
	}

	stats, err := s.gateway.AdminStats(ctx)
	if err != nil {
		s.log.Warn("Failed to fetch stats", zap.Error(err))
		dash.StatsError = gateway.Message(err, "Failed to fetch stats")
	} else {
		dash.Stats = stats
	}

	rides, err := s.gateway.AdminRides(ctx)
	if err != nil {
		s.log.Warn("Failed to fetch rides", zap.Error(err))
		dash.RidesError = gateway.Message(err, "Failed to load rides")
		return dash
	}

	records := make([]revenue.Record, 0, len(rides))
	for _, r := range rides {
		records = append(records, r.Record)
		dash.TotalRevenue += revenue.Derive(r.Record)
	}
	dash.Commission = revenue.Commission(records, s.config.CommissionPct)
	return dash
}

// Table mounts the table on first use, applies q and renders the current page.
func (s *adminService) Table(ctx context.Context, session uuid.UUID, name string, q *request.TableQuery) (any, error) {
	d, t, err := s.lookup(session, name)
	if err != nil {
		return nil, err
	}

	if q != nil {
		t.SetQuery(listview.Query{
			Search: q.Search,
			SortBy: q.Sort,
			Desc:   q.Desc,
			Page:   q.Page,
		})
	}
	if err := s.mount(ctx, d, t); err != nil {
		return nil, err
	}
	return t.render(s.now()), nil
}

func (s *adminService) Refresh(ctx context.Context, session uuid.UUID, name string) (any, error) {
	d, t, err := s.lookup(session, name)
	if err != nil {
		return nil, err
	}
	if !t.Mounted() {
		if err := s.mount(ctx, d, t); err != nil {
			return nil, err
		}
	} else {
		t.RefreshNow(ctx)
	}
	return t.render(s.now()), nil
}

func (s *adminService) CloseTable(session uuid.UUID, name string) error {
	_, t, err := s.lookup(session, name)
	if err != nil {
		return err
	}
	t.Unmount()
	return nil
}

// ==================== ACTIONS ====================

// act runs one confirmed row action on a mounted view and renders the
// table it changed.
func act[T, R any](
	ctx context.Context,
	s *adminService,
	d *dashboard,
	t *boundTable[T, R],
	rowID int64,
	confirm bool,
	prompt string,
	success string,
	call func(ctx context.Context) (string, error),
) (*response.ActionResult[any], error) {
	if !confirm {
		return nil, &ConfirmationError{Prompt: prompt}
	}

	if err := s.mount(ctx, d, t); err != nil {
		return nil, err
	}

	msg, err := t.RunAction(ctx, itoa(rowID), call)
	if err != nil {
		return nil, err
	}
	if msg == "" {
		msg = success
	}
	return &response.ActionResult[any]{Message: msg, Items: t.render(s.now())}, nil
}

func (s *adminService) BlockUser(ctx context.Context, session uuid.UUID, userID int64, confirm bool) (*response.ActionResult[any], error) {
	d := s.dashboard(session)
	t := d.users

	name := itoa(userID)
	if u, ok := t.Find(itoa(userID)); ok && u.Name != "" {
		name = u.Name
	}

	res, err := act(ctx, s, d, t, userID, confirm, fmt.Sprintf("Block user \"%s\"?", name), "User blocked.",
		func(ctx context.Context) (string, error) { return s.gateway.BlockUser(ctx, userID) })
	if err == nil {
		s.log.Info("User blocked", zap.Int64("user_id", userID))
	}
	return res, err
}

func (s *adminService) VerifyDriver(ctx context.Context, session uuid.UUID, userID int64, confirm bool) (*response.ActionResult[any], error) {
	d := s.dashboard(session)
	t := d.users
	res, err := act(ctx, s, d, t, userID, confirm, "Verify this driver?", "Driver verified.",
		func(ctx context.Context) (string, error) { return s.gateway.VerifyDriver(ctx, userID) })
	if err == nil {
		s.log.Info("Driver verified", zap.Int64("user_id", userID))
	}
	return res, err
}

func (s *adminService) ApproveBooking(ctx context.Context, session uuid.UUID, bookingID int64, confirm bool) (*response.ActionResult[any], error) {
	d := s.dashboard(session)
	t := d.bookings
	return act(ctx, s, d, t, bookingID, confirm, "Approve this booking?", "Booking approved.",
		func(ctx context.Context) (string, error) { return s.gateway.ApproveBooking(ctx, bookingID) })
}

func (s *adminService) RejectBooking(ctx context.Context, session uuid.UUID, bookingID int64, confirm bool) (*response.ActionResult[any], error) {
	d := s.dashboard(session)
	t := d.bookings
	return act(ctx, s, d, t, bookingID, confirm, "Reject this booking?", "Booking rejected.",
		func(ctx context.Context) (string, error) { return s.gateway.RejectBooking(ctx, bookingID) })
}

func (s *adminService) MarkPaymentPaid(ctx context.Context, session uuid.UUID, paymentID int64, confirm bool) (*response.ActionResult[any], error) {
	d := s.dashboard(session)
	t := d.payments
	return act(ctx, s, d, t, paymentID, confirm, "Mark this payment as COMPLETED?", "Payment marked as completed!",
		func(ctx context.Context) (string, error) {
			return s.gateway.AdminSetPaymentStatus(ctx, paymentID, gateway.PaymentCompleted)
		})
}

// MarkRidePaid confirms the first pending cash payment of the ride.
func (s *adminService) MarkRidePaid(ctx context.Context, session uuid.UUID, rideID int64, confirm bool) (*response.ActionResult[any], error) {
	d := s.dashboard(session)
	t := d.rides
	if !confirm {
		return nil, &ConfirmationError{Prompt: "Mark this payment as COMPLETED?"}
	}

	if err := s.mount(ctx, d, t); err != nil {
		return nil, err
	}
	ride, ok := t.Find(itoa(rideID))
	if !ok {
		return nil, ErrRowNotFound
	}
	paymentID, ok := pendingCashPayment(ride.DriverRide, s.now())
	if !ok {
		return nil, ErrNothingToPay
	}

	return act(ctx, s, d, t, rideID, true, "", "Payment marked as completed!",
		func(ctx context.Context) (string, error) {
			if _, err := s.gateway.SetPaymentStatus(ctx, paymentID, gateway.PaymentCompleted); err != nil {
				return "", err
			}
			return "", nil
		})
}

func (s *adminService) WithdrawCommission(ctx context.Context, session uuid.UUID, confirm bool) (*response.ActionResult[*response.AdminDashboard], error) {
	dash := s.Dashboard(ctx, session)
	if dash.RidesError != "" {
		return nil, userError(dash.RidesError)
	}

	if !confirm {
		return nil, &ConfirmationError{Prompt: fmt.Sprintf("Withdraw commission of ₹%.2f?", dash.Commission)}
	}

	msg, err := s.gateway.WithdrawCommission(ctx, dash.Commission)
	if err != nil {
		s.log.Warn("Withdraw failed", zap.Error(err))
		return nil, err
	}
	if msg == "" {
		msg = "Commission withdrawn successfully"
	}
	s.log.Info("Commission withdrawn", zap.Float64("amount", dash.Commission))

	return &response.ActionResult[*response.AdminDashboard]{
		Message: msg,
		Items:   s.Dashboard(ctx, session),
	}, nil
}
