package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/events"
	"github.com/spec-kit/support-desk/internal/repository"
)

// In-memory repository fakes. They mirror the persistence contract:
// misses surface as pgx.ErrNoRows and agent enumeration is ordered by
// id ascending.

type fakeUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		r.seq++
		user.ID = fmt.Sprintf("user-%04d", r.seq)
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) ListByRole(_ context.Context, role domain.Role) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0)
	for _, user := range r.users {
		if user.Role == role {
			out = append(out, user)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeTicketRepo struct {
	mu       sync.Mutex
	seq      int
	tickets  map[string]domain.Ticket
	touchErr error
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: make(map[string]domain.Ticket)}
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ticket.ID == "" {
		r.seq++
		ticket.ID = fmt.Sprintf("ticket-%04d", r.seq)
	}
	now := time.Now()
	ticket.CreatedAt = now
	ticket.UpdatedAt = now
	r.tickets[ticket.ID] = *ticket
	return nil
}

func (r *fakeTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tickets[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	ticket.UpdatedAt = time.Now()
	r.tickets[ticket.ID] = *ticket
	return nil
}

func (r *fakeTicketRepo) Touch(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.touchErr != nil {
		return r.touchErr
	}
	ticket, ok := r.tickets[id]
	if !ok {
		return pgx.ErrNoRows
	}
	ticket.UpdatedAt = time.Now()
	r.tickets[id] = ticket
	return nil
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &ticket, nil
}

func (r *fakeTicketRepo) ListByCustomer(_ context.Context, userID string) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Ticket, 0)
	for _, ticket := range r.tickets {
		if ticket.CustomerID == userID {
			out = append(out, ticket)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeTicketRepo) ListByAgent(_ context.Context, userID string) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Ticket, 0)
	for _, ticket := range r.tickets {
		if ticket.AssignedTo(userID) {
			out = append(out, ticket)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeResponseRepo struct {
	mu        sync.Mutex
	seq       int
	responses map[string]domain.Response
}

func newFakeResponseRepo() *fakeResponseRepo {
	return &fakeResponseRepo{responses: make(map[string]domain.Response)}
}

func (r *fakeResponseRepo) Create(_ context.Context, response *domain.Response) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if response.ID == "" {
		r.seq++
		response.ID = fmt.Sprintf("response-%04d", r.seq)
	}
	now := time.Now()
	response.CreatedAt = now
	response.UpdatedAt = now
	r.responses[response.ID] = *response
	return nil
}

func (r *fakeResponseRepo) Update(_ context.Context, response *domain.Response) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.responses[response.ID]; !ok {
		return pgx.ErrNoRows
	}
	response.UpdatedAt = time.Now()
	r.responses[response.ID] = *response
	return nil
}

func (r *fakeResponseRepo) GetByID(_ context.Context, id string) (*domain.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	response, ok := r.responses[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &response, nil
}

func (r *fakeResponseRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.responses[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.responses, id)
	return nil
}

func (r *fakeResponseRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Response, 0)
	for _, response := range r.responses {
		if response.TicketID == ticketID {
			out = append(out, response)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	seq      int
	bookings map[string]domain.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]domain.Booking)}
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if booking.ID == "" {
		r.seq++
		booking.ID = fmt.Sprintf("booking-%04d", r.seq)
	}
	booking.CreatedAt = time.Now()
	r.bookings[booking.ID] = *booking
	return nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &booking, nil
}

// fixture wires the services over the fakes.
type fixture struct {
	users     *fakeUserRepo
	tickets   *fakeTicketRepo
	responses *fakeResponseRepo
	bookings  *fakeBookingRepo
	assigner  *AssignmentService
	ticketSvc *TicketService
	replySvc  *ResponseService
}

func newFixture() *fixture {
	users := newFakeUserRepo()
	tickets := newFakeTicketRepo()
	responses := newFakeResponseRepo()
	bookings := newFakeBookingRepo()
	logger := zap.NewNop()
	dispatcher := events.NewInMemoryDispatcher()
	assigner := NewAssignmentService(users, repository.NewMemoryAssignmentCursor(), logger)
	return &fixture{
		users:     users,
		tickets:   tickets,
		responses: responses,
		bookings:  bookings,
		assigner:  assigner,
		ticketSvc: NewTicketService(TicketDependencies{
			UserRepo:     users,
			TicketRepo:   tickets,
			ResponseRepo: responses,
			Assigner:     assigner,
			Dispatcher:   dispatcher,
			Logger:       logger,
		}),
		replySvc: NewResponseService(ResponseDependencies{
			UserRepo:     users,
			TicketRepo:   tickets,
			ResponseRepo: responses,
			Dispatcher:   dispatcher,
			Logger:       logger,
		}),
	}
}

func (f *fixture) addUser(id, email string, role domain.Role) *domain.User {
	user := &domain.User{ID: id, Email: email, Password: "secret", Role: role}
	_ = f.users.Create(context.Background(), user)
	return user
}

func (f *fixture) addTicket(id, customerID string, agentID *string, category domain.TicketCategory, status domain.TicketStatus) *domain.Ticket {
	ticket := &domain.Ticket{
		ID:          id,
		CustomerID:  customerID,
		AgentID:     agentID,
		Category:    category,
		Status:      status,
		Description: "help needed",
	}
	_ = f.tickets.Create(context.Background(), ticket)
	return ticket
}

func (f *fixture) addResponse(id, ticketID, authorID string, role domain.Role, text string) *domain.Response {
	response := &domain.Response{ID: id, TicketID: ticketID, AuthorID: authorID, Role: role, Text: text}
	_ = f.responses.Create(context.Background(), response)
	return response
}

func strPtr(s string) *string { return &s }
