// Package repotest provides in-memory implementations of the domain repositories for tests.
// Each fake exposes an Err field; when set, every method returns it.
package repotest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"mindcare-backend/internal/domain/entity"

	"github.com/google/uuid"
)

// Clock returns the time stamped on created rows; tests may replace it
var Clock = time.Now

// -- Appointments --

type AppointmentRepo struct {
	mu   sync.Mutex
	rows map[string]*entity.Appointment
	Err  error
}

func NewAppointmentRepo(seed ...entity.Appointment) *AppointmentRepo {
	r := &AppointmentRepo{rows: make(map[string]*entity.Appointment)}
	for i := range seed {
		a := seed[i]
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		r.rows[a.ID] = &a
	}
	return r
}

func (r *AppointmentRepo) Create(_ context.Context, a *entity.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.CreatedAt = Clock()
	a.UpdatedAt = a.CreatedAt
	cp := *a
	r.rows[a.ID] = &cp
	return nil
}

func (r *AppointmentRepo) FindByID(_ context.Context, id string) (*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	a, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *AppointmentRepo) FindAll(_ context.Context, f entity.AppointmentFilter) ([]entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var out []entity.Appointment
	for _, a := range r.rows {
		if f.DoctorID != "" && a.DoctorID != f.DoctorID {
			continue
		}
		if f.PatientID != "" && a.PatientID != f.PatientID {
			continue
		}
		if f.Date != "" && !strings.HasPrefix(a.Date, f.Date) {
			continue
		}
		if len(f.Statuses) > 0 && !containsStatus(f.Statuses, a.Status) {
			continue
		}
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *AppointmentRepo) UpdateIfStatus(_ context.Context, id string, from entity.AppointmentStatus, patch map[string]interface{}) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	a, ok := r.rows[id]
	if !ok || a.Status != from {
		return 0, nil
	}
	for k, v := range patch {
		switch k {
		case "status":
			a.Status = v.(entity.AppointmentStatus)
		case "cancellation_reason":
			s := v.(string)
			a.CancellationReason = &s
		case "cancelled_by":
			by := v.(entity.CancelledBy)
			a.CancelledBy = &by
		case "cancelled_at":
			at := v.(time.Time)
			a.CancelledAt = &at
		}
	}
	a.UpdatedAt = Clock()
	return 1, nil
}

func (r *AppointmentRepo) Delete(_ context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	if _, ok := r.rows[id]; !ok {
		return 0, nil
	}
	delete(r.rows, id)
	return 1, nil
}

// Get returns the stored row without copying semantics of FindByID; nil when absent
func (r *AppointmentRepo) Get(id string) *entity.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rows[id]
}

func containsStatus(list []entity.AppointmentStatus, s entity.AppointmentStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// -- Alerts --

type AlertRepo struct {
	mu     sync.Mutex
	Alerts []*entity.Alert
	Err    error
}

func NewAlertRepo() *AlertRepo {
	return &AlertRepo{}
}

func (r *AlertRepo) Create(_ context.Context, a *entity.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.CreatedAt = Clock()
	cp := *a
	r.Alerts = append(r.Alerts, &cp)
	return nil
}

func (r *AlertRepo) FindAll(_ context.Context, f entity.AlertFilter) ([]entity.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var out []entity.Alert
	for _, a := range r.Alerts {
		if alertMatches(a, f) {
			out = append(out, *a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *AlertRepo) MarkRead(_ context.Context, f entity.AlertFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	unread := false
	f.IsRead = &unread
	var n int64
	for _, a := range r.Alerts {
		if alertMatches(a, f) {
			a.IsRead = true
			n++
		}
	}
	return n, nil
}

// Unread returns unread alerts addressed to recipient
func (r *AlertRepo) Unread(recipient entity.AlertRecipient) []entity.Alert {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Alert
	for _, a := range r.Alerts {
		if a.Recipient == recipient && !a.IsRead {
			out = append(out, *a)
		}
	}
	return out
}

func alertMatches(a *entity.Alert, f entity.AlertFilter) bool {
	if f.DoctorID != "" && a.DoctorID != f.DoctorID {
		return false
	}
	if f.PatientID != "" && a.PatientID != f.PatientID {
		return false
	}
	if f.AppointmentID != "" && a.AppointmentID != nil && *a.AppointmentID != f.AppointmentID {
		return false
	}
	if f.Recipient != "" && a.Recipient != f.Recipient {
		return false
	}
	if f.Type != "" && a.Type != f.Type {
		return false
	}
	if f.IsRead != nil && a.IsRead != *f.IsRead {
		return false
	}
	return true
}

// -- Patients --

type PatientRepo struct {
	mu   sync.Mutex
	rows map[string]*entity.Patient
	Err  error
}

func NewPatientRepo(seed ...entity.Patient) *PatientRepo {
	r := &PatientRepo{rows: make(map[string]*entity.Patient)}
	for i := range seed {
		p := seed[i]
		r.rows[p.ID] = &p
	}
	return r
}

func (r *PatientRepo) Create(_ context.Context, p *entity.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	p.CreatedAt = Clock()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	r.rows[p.ID] = &cp
	return nil
}

func (r *PatientRepo) FindByID(_ context.Context, id string) (*entity.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	p, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *PatientRepo) FindByIDs(_ context.Context, ids []string) ([]entity.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var out []entity.Patient
	for _, id := range ids {
		if p, ok := r.rows[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *PatientRepo) FindAll(_ context.Context, search string) ([]entity.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var out []entity.Patient
	for _, p := range r.rows {
		if search == "" || strings.Contains(strings.ToLower(p.Name), strings.ToLower(search)) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *PatientRepo) Update(_ context.Context, id string, patch map[string]interface{}) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	p, ok := r.rows[id]
	if !ok {
		return 0, nil
	}
	for k, v := range patch {
		switch k {
		case "name":
			p.Name = v.(string)
		case "email":
			p.Email = v.(string)
		case "age":
			p.Age = v.(int)
		case "gender":
			p.Gender = v.(string)
		case "doctor_id":
			s := v.(string)
			p.DoctorID = &s
		case "primary_diagnosis":
			p.PrimaryDiagnosis = v.(string)
		case "emergency_contact_name":
			p.EmergencyContact.Name = v.(string)
		case "emergency_contact_phone":
			p.EmergencyContact.Phone = v.(string)
		case "emergency_contact_relationship":
			p.EmergencyContact.Relationship = v.(string)
		}
	}
	p.UpdatedAt = Clock()
	return 1, nil
}

// -- Doctors --

type DoctorRepo struct {
	mu   sync.Mutex
	rows []*entity.Doctor
	Err  error
}

func NewDoctorRepo(seed ...entity.Doctor) *DoctorRepo {
	r := &DoctorRepo{}
	for i := range seed {
		d := seed[i]
		r.rows = append(r.rows, &d)
	}
	return r
}

func (r *DoctorRepo) Create(_ context.Context, d *entity.Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	d.CreatedAt = Clock()
	cp := *d
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *DoctorRepo) FindByID(_ context.Context, id string) (*entity.Doctor, error) {
	return r.find(func(d *entity.Doctor) bool { return d.ID == id })
}

func (r *DoctorRepo) FindByUserID(_ context.Context, userID string) (*entity.Doctor, error) {
	return r.find(func(d *entity.Doctor) bool { return d.UserID == userID })
}

func (r *DoctorRepo) FindAll(_ context.Context) ([]entity.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]entity.Doctor, 0, len(r.rows))
	for _, d := range r.rows {
		out = append(out, *d)
	}
	return out, nil
}

func (r *DoctorRepo) find(match func(*entity.Doctor) bool) (*entity.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, d := range r.rows {
		if match(d) {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

// -- Mood entries --

type MoodEntryRepo struct {
	mu      sync.Mutex
	Entries []entity.MoodEntry
	Err     error
}

func NewMoodEntryRepo(seed ...entity.MoodEntry) *MoodEntryRepo {
	return &MoodEntryRepo{Entries: seed}
}

func (r *MoodEntryRepo) Create(_ context.Context, e *entity.MoodEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.CreatedAt = Clock()
	r.Entries = append(r.Entries, *e)
	return nil
}

func (r *MoodEntryRepo) FindByPatientID(_ context.Context, patientID string) ([]entity.MoodEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var out []entity.MoodEntry
	for _, e := range r.Entries {
		if e.PatientID == patientID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// -- Messages --

type MessageRepo struct {
	mu       sync.Mutex
	Messages []*entity.Message
	Err      error
}

func NewMessageRepo(seed ...entity.Message) *MessageRepo {
	r := &MessageRepo{}
	for i := range seed {
		m := seed[i]
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
		r.Messages = append(r.Messages, &m)
	}
	return r
}

func (r *MessageRepo) Create(_ context.Context, m *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	m.CreatedAt = Clock()
	cp := *m
	r.Messages = append(r.Messages, &cp)
	return nil
}

func (r *MessageRepo) FindByID(_ context.Context, id string) (*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, m := range r.Messages {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MessageRepo) FindByReceiverID(_ context.Context, receiverID string) ([]entity.Message, error) {
	return r.filter(func(m *entity.Message) bool { return m.ReceiverID == receiverID })
}

func (r *MessageRepo) FindConversation(_ context.Context, userID, otherID string) ([]entity.Message, error) {
	return r.filter(func(m *entity.Message) bool {
		return (m.SenderID == userID && m.ReceiverID == otherID) || (m.SenderID == otherID && m.ReceiverID == userID)
	})
}

func (r *MessageRepo) CountUnread(_ context.Context, receiverID string) (int64, error) {
	msgs, err := r.filter(func(m *entity.Message) bool { return m.ReceiverID == receiverID && !m.IsRead })
	return int64(len(msgs)), err
}

func (r *MessageRepo) MarkRead(_ context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	for _, m := range r.Messages {
		if m.ID == id {
			m.IsRead = true
			return 1, nil
		}
	}
	return 0, nil
}

func (r *MessageRepo) filter(match func(*entity.Message) bool) ([]entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var out []entity.Message
	for _, m := range r.Messages {
		if match(m) {
			out = append(out, *m)
		}
	}
	return out, nil
}

// -- Chat sessions --

type ChatSessionRepo struct {
	mu       sync.Mutex
	Sessions map[string]*entity.ChatSession
	Err      error
}

func NewChatSessionRepo(seed ...entity.ChatSession) *ChatSessionRepo {
	r := &ChatSessionRepo{Sessions: make(map[string]*entity.ChatSession)}
	for i := range seed {
		s := seed[i]
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		r.Sessions[s.ID] = &s
	}
	return r
}

func (r *ChatSessionRepo) Create(_ context.Context, s *entity.ChatSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	s.CreatedAt = Clock()
	s.UpdatedAt = s.CreatedAt
	cp := *s
	r.Sessions[s.ID] = &cp
	return nil
}

func (r *ChatSessionRepo) FindByID(_ context.Context, id string) (*entity.ChatSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	s, ok := r.Sessions[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	cp.Messages = append(entity.ChatMessages(nil), s.Messages...)
	return &cp, nil
}

func (r *ChatSessionRepo) FindByPatientID(_ context.Context, patientID string) ([]entity.ChatSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var out []entity.ChatSession
	for _, s := range r.Sessions {
		if s.PatientID == patientID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *ChatSessionRepo) CountByPatientID(ctx context.Context, patientID string) (int64, error) {
	sessions, err := r.FindByPatientID(ctx, patientID)
	return int64(len(sessions)), err
}

func (r *ChatSessionRepo) Save(_ context.Context, s *entity.ChatSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	s.UpdatedAt = Clock()
	cp := *s
	r.Sessions[s.ID] = &cp
	return nil
}

// -- Audit logs --

type AuditLogRepo struct {
	mu   sync.Mutex
	Logs []entity.AuditLog
	Err  error
}

func NewAuditLogRepo() *AuditLogRepo {
	return &AuditLogRepo{}
}

func (r *AuditLogRepo) Create(_ context.Context, l *entity.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	l.ID = int64(len(r.Logs) + 1)
	l.CreatedAt = Clock()
	r.Logs = append(r.Logs, *l)
	return nil
}

func (r *AuditLogRepo) FindAll(_ context.Context) ([]entity.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	return append([]entity.AuditLog(nil), r.Logs...), nil
}

func (r *AuditLogRepo) FindByID(_ context.Context, id int64) (*entity.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, l := range r.Logs {
		if l.ID == id {
			cp := l
			return &cp, nil
		}
	}
	return nil, nil
}

// Actions returns the recorded audit actions in order
func (r *AuditLogRepo) Actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.Logs))
	for i, l := range r.Logs {
		out[i] = l.Action
	}
	return out
}
