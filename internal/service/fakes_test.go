package service

import (
	"alcyxob/gym-app/internal/domain"
	"alcyxob/gym-app/internal/repository"
	"context"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes shared by the service tests.

type fakeUserRepo struct {
	users map[primitive.ObjectID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return primitive.NilObjectID, repository.ErrDuplicateKey
		}
	}
	id := primitive.NewObjectID()
	stored := *user
	stored.ID = id
	stored.CreatedAt = time.Now()
	r.users[id] = &stored
	return id, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *u
	return &copy, nil
}

func (r *fakeUserRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.User, error) {
	var out []domain.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) GetByRole(_ context.Context, role domain.Role) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (r *fakeUserRepo) CountByRole(_ context.Context, role domain.Role) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

type fakeMemberRepo struct {
	members map[primitive.ObjectID]*domain.Member
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: make(map[primitive.ObjectID]*domain.Member)}
}

func (r *fakeMemberRepo) Create(_ context.Context, member *domain.Member) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	stored := *member
	stored.ID = id
	r.members[id] = &stored
	return id, nil
}

func (r *fakeMemberRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Member, error) {
	m, ok := r.members[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *m
	return &copy, nil
}

func (r *fakeMemberRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.Member, error) {
	var out []domain.Member
	for _, id := range ids {
		if m, ok := r.members[id]; ok {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMemberRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) (*domain.Member, error) {
	for _, m := range r.members {
		if m.UserID == userID {
			copy := *m
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeMemberRepo) GetAll(_ context.Context) ([]domain.Member, error) {
	out := make([]domain.Member, 0, len(r.members))
	for _, m := range r.members {
		out = append(out, *m)
	}
	return out, nil
}

func (r *fakeMemberRepo) Update(_ context.Context, id primitive.ObjectID, upd repository.MemberUpdate) (*domain.Member, error) {
	m, ok := r.members[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if upd.DOB != nil {
		m.DOB = *upd.DOB
	}
	if upd.Gender != nil {
		m.Gender = *upd.Gender
	}
	if upd.MembershipType != nil {
		m.MembershipType = *upd.MembershipType
	}
	if upd.ExpiryDate != nil {
		m.ExpiryDate = *upd.ExpiryDate
	}
	if upd.TrainerID != nil {
		m.TrainerID = upd.TrainerID
	}
	if upd.IDProof != nil {
		m.IDProof = *upd.IDProof
	}
	copy := *m
	return &copy, nil
}

func (r *fakeMemberRepo) SetMembership(_ context.Context, id primitive.ObjectID, mt domain.MembershipType, expiry time.Time) error {
	m, ok := r.members[id]
	if !ok {
		return repository.ErrNotFound
	}
	m.MembershipType = mt
	m.ExpiryDate = expiry
	return nil
}

func (r *fakeMemberRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(r.members)), nil
}

func (r *fakeMemberRepo) CountActive(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for _, m := range r.members {
		if m.ExpiryDate.After(now) {
			n++
		}
	}
	return n, nil
}

func (r *fakeMemberRepo) CountExpired(_ context.Context, now time.Time) (int64, error) {
	total, _ := r.CountAll(context.Background())
	active, _ := r.CountActive(context.Background(), now)
	return total - active, nil
}

type fakeTrainerRepo struct {
	trainers map[primitive.ObjectID]*domain.Trainer
}

func newFakeTrainerRepo() *fakeTrainerRepo {
	return &fakeTrainerRepo{trainers: make(map[primitive.ObjectID]*domain.Trainer)}
}

func (r *fakeTrainerRepo) Create(_ context.Context, trainer *domain.Trainer) (primitive.ObjectID, error) {
	for _, t := range r.trainers {
		if t.UserID == trainer.UserID {
			return primitive.NilObjectID, repository.ErrDuplicateKey
		}
	}
	id := primitive.NewObjectID()
	stored := *trainer
	stored.ID = id
	if stored.Specialization == "" {
		stored.Specialization = domain.DefaultSpecialization
	}
	stored.CreatedAt = time.Now()
	r.trainers[id] = &stored
	return id, nil
}

func (r *fakeTrainerRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Trainer, error) {
	t, ok := r.trainers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *t
	return &copy, nil
}

func (r *fakeTrainerRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) (*domain.Trainer, error) {
	for _, t := range r.trainers {
		if t.UserID == userID {
			copy := *t
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeTrainerRepo) GetAll(_ context.Context) ([]domain.Trainer, error) {
	out := make([]domain.Trainer, 0, len(r.trainers))
	for _, t := range r.trainers {
		out = append(out, *t)
	}
	return out, nil
}

type fakeClassRepo struct {
	classes map[primitive.ObjectID]*domain.Class
}

func newFakeClassRepo() *fakeClassRepo {
	return &fakeClassRepo{classes: make(map[primitive.ObjectID]*domain.Class)}
}

func (r *fakeClassRepo) Create(_ context.Context, class *domain.Class) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	stored := *class
	stored.ID = id
	r.classes[id] = &stored
	return id, nil
}

func (r *fakeClassRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Class, error) {
	c, ok := r.classes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *c
	return &copy, nil
}

func (r *fakeClassRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.Class, error) {
	var out []domain.Class
	for _, id := range ids {
		if c, ok := r.classes[id]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeClassRepo) List(_ context.Context, filter repository.ClassFilter) ([]domain.Class, error) {
	var out []domain.Class
	for _, c := range r.classes {
		if filter.Category != "" && c.Category != filter.Category {
			continue
		}
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeClassRepo) Update(_ context.Context, class *domain.Class) error {
	if _, ok := r.classes[class.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *class
	r.classes[class.ID] = &stored
	return nil
}

func (r *fakeClassRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.classes[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.classes, id)
	return nil
}

type fakeBookingRepo struct {
	bookings map[primitive.ObjectID]*domain.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[primitive.ObjectID]*domain.Booking)}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (primitive.ObjectID, error) {
	for _, b := range r.bookings {
		if b.MemberID == booking.MemberID && b.ClassID == booking.ClassID &&
			sameDay(b.Date, booking.Date) && b.Status == domain.BookingConfirmed &&
			booking.Status == domain.BookingConfirmed {
			return primitive.NilObjectID, repository.ErrDuplicateKey
		}
	}
	id := primitive.NewObjectID()
	stored := *booking
	stored.ID = id
	stored.CreatedAt = time.Now()
	r.bookings[id] = &stored
	return id, nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *b
	return &copy, nil
}

func (r *fakeBookingRepo) List(_ context.Context, filter repository.BookingFilter) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range r.bookings {
		if filter.MemberID != nil && b.MemberID != *filter.MemberID {
			continue
		}
		if filter.ClassID != nil && b.ClassID != *filter.ClassID {
			continue
		}
		if filter.Date != nil && !sameDay(b.Date, *filter.Date) {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeBookingRepo) CountSeats(_ context.Context, classID primitive.ObjectID, date time.Time) (int64, error) {
	var n int64
	for _, b := range r.bookings {
		if b.ClassID == classID && sameDay(b.Date, date) && b.CountsTowardCapacity() {
			n++
		}
	}
	return n, nil
}

func (r *fakeBookingRepo) FindConfirmed(_ context.Context, memberID, classID primitive.ObjectID, date time.Time) (*domain.Booking, error) {
	for _, b := range r.bookings {
		if b.MemberID == memberID && b.ClassID == classID && sameDay(b.Date, date) && b.Status == domain.BookingConfirmed {
			copy := *b
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, status domain.BookingStatus, cancelledAt *time.Time, reason string) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	b.Status = status
	b.CancelledAt = cancelledAt
	b.CancellationReason = reason
	copy := *b
	return &copy, nil
}

func (r *fakeBookingRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.bookings[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.bookings, id)
	return nil
}

func (r *fakeBookingRepo) CountActiveSince(_ context.Context, since time.Time) (int64, error) {
	var n int64
	for _, b := range r.bookings {
		if b.CountsTowardCapacity() && !b.Date.Before(since) {
			n++
		}
	}
	return n, nil
}

type fakeInvoiceRepo struct {
	invoices map[primitive.ObjectID]*domain.Invoice
	seq      int
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: make(map[primitive.ObjectID]*domain.Invoice)}
}

func (r *fakeInvoiceRepo) NextInvoiceNumber(_ context.Context) (string, error) {
	r.seq++
	return fmt.Sprintf("INV-%06d", r.seq), nil
}

func (r *fakeInvoiceRepo) Create(_ context.Context, invoice *domain.Invoice) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	stored := *invoice
	stored.ID = id
	stored.CreatedAt = time.Now()
	r.invoices[id] = &stored
	return id, nil
}

func (r *fakeInvoiceRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *inv
	return &copy, nil
}

func (r *fakeInvoiceRepo) List(_ context.Context, filter repository.InvoiceFilter) ([]domain.Invoice, error) {
	var out []domain.Invoice
	for _, inv := range r.invoices {
		if filter.MemberID != nil && inv.MemberID != *filter.MemberID {
			continue
		}
		if filter.Status != "" && inv.Status != filter.Status {
			continue
		}
		out = append(out, *inv)
	}
	return out, nil
}

func (r *fakeInvoiceRepo) MarkPaid(_ context.Context, id, paymentID primitive.ObjectID, paidAt time.Time) (*domain.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	inv.Status = domain.InvoicePaid
	inv.PaymentID = &paymentID
	inv.PaidDate = &paidAt
	copy := *inv
	return &copy, nil
}

func (r *fakeInvoiceRepo) SetStatus(_ context.Context, id primitive.ObjectID, status domain.InvoiceStatus) (*domain.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	inv.Status = status
	copy := *inv
	return &copy, nil
}

type fakePaymentRepo struct {
	payments map[primitive.ObjectID]*domain.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[primitive.ObjectID]*domain.Payment)}
}

func (r *fakePaymentRepo) Create(_ context.Context, payment *domain.Payment) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	stored := *payment
	stored.ID = id
	r.payments[id] = &stored
	return id, nil
}

func (r *fakePaymentRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Payment, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *p
	return &copy, nil
}

func (r *fakePaymentRepo) List(_ context.Context, filter repository.PaymentFilter) ([]domain.Payment, error) {
	var out []domain.Payment
	for _, p := range r.payments {
		if filter.MemberID != nil && p.MemberID != *filter.MemberID {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.Date.Start != nil && p.Date.Before(*filter.Date.Start) {
			continue
		}
		if filter.Date.End != nil && p.Date.After(*filter.Date.End) {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakePaymentRepo) SetInvoiceID(_ context.Context, id, invoiceID primitive.ObjectID) error {
	p, ok := r.payments[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.InvoiceID = &invoiceID
	return nil
}

func (r *fakePaymentRepo) ListSuccessfulSince(_ context.Context, since *time.Time) ([]domain.Payment, error) {
	var out []domain.Payment
	for _, p := range r.payments {
		if p.Status != domain.PaymentSuccess {
			continue
		}
		if since != nil && p.Date.Before(*since) {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

type fakeExerciseRepo struct {
	exercises map[primitive.ObjectID]*domain.Exercise
}

func newFakeExerciseRepo() *fakeExerciseRepo {
	return &fakeExerciseRepo{exercises: make(map[primitive.ObjectID]*domain.Exercise)}
}

func (r *fakeExerciseRepo) Create(_ context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	stored := *exercise
	stored.ID = id
	r.exercises[id] = &stored
	return id, nil
}

func (r *fakeExerciseRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	e, ok := r.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *e
	return &copy, nil
}

func (r *fakeExerciseRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.Exercise, error) {
	var out []domain.Exercise
	for _, id := range ids {
		if e, ok := r.exercises[id]; ok {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeExerciseRepo) List(_ context.Context, filter repository.ExerciseFilter) ([]domain.Exercise, error) {
	var out []domain.Exercise
	for _, e := range r.exercises {
		if filter.Difficulty != "" && e.Difficulty != filter.Difficulty {
			continue
		}
		if filter.Equipment != "" && e.Equipment != filter.Equipment {
			continue
		}
		if filter.MuscleGroup != "" {
			found := false
			for _, mg := range e.MuscleGroups {
				if mg == filter.MuscleGroup {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeExerciseRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.exercises)), nil
}

func (r *fakeExerciseRepo) InsertMany(_ context.Context, exercises []domain.Exercise) ([]domain.Exercise, error) {
	out := make([]domain.Exercise, 0, len(exercises))
	for _, e := range exercises {
		e.ID = primitive.NewObjectID()
		stored := e
		r.exercises[e.ID] = &stored
		out = append(out, e)
	}
	return out, nil
}

type fakeAttendanceRepo struct {
	records []domain.Attendance
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{}
}

func (r *fakeAttendanceRepo) Create(_ context.Context, att *domain.Attendance) (primitive.ObjectID, error) {
	att.ID = primitive.NewObjectID()
	r.records = append(r.records, *att)
	return att.ID, nil
}

func (r *fakeAttendanceRepo) ListByMember(_ context.Context, memberID primitive.ObjectID) ([]domain.Attendance, error) {
	var out []domain.Attendance
	for _, a := range r.records {
		if a.MemberID == memberID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAttendanceRepo) CountSince(_ context.Context, since time.Time) (int64, error) {
	var n int64
	for _, a := range r.records {
		if !a.Date.Before(since) {
			n++
		}
	}
	return n, nil
}

func (r *fakeAttendanceRepo) CountBetween(_ context.Context, from, to time.Time) (int64, error) {
	var n int64
	for _, a := range r.records {
		if !a.Date.Before(from) && !a.Date.After(to) {
			n++
		}
	}
	return n, nil
}

type fakePlanRepo struct {
	plans map[primitive.ObjectID]*domain.WorkoutPlan
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: make(map[primitive.ObjectID]*domain.WorkoutPlan)}
}

func (r *fakePlanRepo) Create(_ context.Context, plan *domain.WorkoutPlan) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	stored := *plan
	stored.ID = id
	r.plans[id] = &stored
	return id, nil
}

func (r *fakePlanRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.WorkoutPlan, error) {
	p, ok := r.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *p
	return &copy, nil
}

func (r *fakePlanRepo) List(_ context.Context, filter repository.PlanFilter) ([]domain.WorkoutPlan, error) {
	var out []domain.WorkoutPlan
	for _, p := range r.plans {
		if filter.TrainerID != nil && p.TrainerID != *filter.TrainerID {
			continue
		}
		if filter.MemberID != nil && (p.MemberID == nil || *p.MemberID != *filter.MemberID) {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakePlanRepo) Update(_ context.Context, plan *domain.WorkoutPlan) error {
	if _, ok := r.plans[plan.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *plan
	r.plans[plan.ID] = &stored
	return nil
}

func (r *fakePlanRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.plans[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.plans, id)
	return nil
}

type fakeSessionRepo struct {
	sessions map[primitive.ObjectID]*domain.WorkoutSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[primitive.ObjectID]*domain.WorkoutSession)}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	stored := *session
	stored.ID = id
	r.sessions[id] = &stored
	return id, nil
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.WorkoutSession, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *s
	return &copy, nil
}

func (r *fakeSessionRepo) List(_ context.Context, filter repository.SessionFilter) ([]domain.WorkoutSession, error) {
	var out []domain.WorkoutSession
	for _, s := range r.sessions {
		if filter.MemberID != nil && s.MemberID != *filter.MemberID {
			continue
		}
		if filter.Completed != nil && s.Completed != *filter.Completed {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (r *fakeSessionRepo) Update(_ context.Context, session *domain.WorkoutSession) error {
	if _, ok := r.sessions[session.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *session
	r.sessions[session.ID] = &stored
	return nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.sessions[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.sessions, id)
	return nil
}
