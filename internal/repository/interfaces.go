package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/clinicore/clinic-api/internal/model"
)

// All repository interfaces in one file. Read methods degrade to their
// documented empty value when the backing store is unavailable; only
// writes that require a guaranteed identity may error for missing input.
type (
	UserRepository interface {
		Upsert(ctx context.Context, user *model.UpsertUser) error
		GetByOpenID(ctx context.Context, openID string) (*model.User, error)
		GetByID(ctx context.Context, id int64) (*model.User, error)
		CountActiveSince(ctx context.Context, since time.Time) (int64, error)
	}

	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) (*model.Patient, error)
		GetByID(ctx context.Context, id int64) (*model.Patient, error)
		GetByPhone(ctx context.Context, phone string) (*model.Patient, error)
		Search(ctx context.Context, query string) ([]*model.Patient, error)
		List(ctx context.Context, limit, offset int) ([]*model.Patient, error)
		Update(ctx context.Context, patient *model.Patient) error
		Deactivate(ctx context.Context, id int64) error
	}

	DoctorRepository interface {
		Create(ctx context.Context, doctor *model.Doctor) (*model.Doctor, error)
		GetByID(ctx context.Context, id int64) (*model.Doctor, error)
		ListActive(ctx context.Context) ([]*model.Doctor, error)
		Update(ctx context.Context, doctor *model.Doctor) error
		Deactivate(ctx context.Context, id int64) error
	}

	ServiceRepository interface {
		Create(ctx context.Context, svc *model.Service) (*model.Service, error)
		GetByID(ctx context.Context, id int64) (*model.Service, error)
		ListByDoctor(ctx context.Context, doctorID int64) ([]*model.Service, error)
		Update(ctx context.Context, svc *model.Service) error
		Deactivate(ctx context.Context, id int64) error
	}

	AppointmentRepository interface {
		Create(ctx context.Context, apt *model.Appointment) (*model.Appointment, error)
		GetByID(ctx context.Context, id int64) (*model.Appointment, error)
		ListByDate(ctx context.Context, date time.Time) ([]*model.Appointment, error)
		ListByDoctor(ctx context.Context, doctorID int64, from, to *time.Time) ([]*model.Appointment, error)
		ListByPatient(ctx context.Context, patientID int64) ([]*model.Appointment, error)
		ListUpcoming(ctx context.Context, days int) ([]*model.Appointment, error)
		// ListDueForReminder returns scheduled appointments starting
		// within the lead window that have no reminder notification yet.
		ListDueForReminder(ctx context.Context, lead time.Duration) ([]*model.Appointment, error)
		UpdateStatus(ctx context.Context, id int64, status model.AppointmentStatus, clinical *model.UpdateAppointmentStatusRequest) error
		// RecordPayment marks the appointment paid and inserts the
		// revenue row in one transaction.
		RecordPayment(ctx context.Context, apt *model.Appointment, rev *model.RevenueRecord) error
	}

	MedicalRecordRepository interface {
		Create(ctx context.Context, rec *model.MedicalRecord) (*model.MedicalRecord, error)
		ListByPatient(ctx context.Context, patientID int64) ([]*model.MedicalRecord, error)
	}

	QueueRepository interface {
		// CheckIn assigns position max+1 for the doctor's open queue
		// inside a transaction.
		CheckIn(ctx context.Context, entry *model.WaitingQueueEntry) (*model.WaitingQueueEntry, error)
		GetByID(ctx context.Context, id int64) (*model.WaitingQueueEntry, error)
		ListByDoctor(ctx context.Context, doctorID int64) ([]*model.WaitingQueueEntry, error)
		UpdateStatus(ctx context.Context, id int64, status model.QueueStatus, at time.Time) error
		// Remove deletes the entry and renumbers the remaining open
		// entries for the doctor in one transaction.
		Remove(ctx context.Context, id int64) error
	}

	MessageRepository interface {
		Create(ctx context.Context, msg *model.Message) (*model.Message, error)
		ListConversation(ctx context.Context, userID, otherID int64, limit int) ([]*model.Message, error)
		ListGroupMessages(ctx context.Context, groupID int64, limit int) ([]*model.Message, error)
		MarkRead(ctx context.Context, id, recipientID int64) error
		CreateGroup(ctx context.Context, group *model.MessageGroup, memberIDs []int64) (*model.MessageGroup, error)
		ListGroupsForUser(ctx context.Context, userID int64) ([]*model.MessageGroup, error)
	}

	NotificationRepository interface {
		Create(ctx context.Context, n *model.Notification) (*model.Notification, error)
		ListUnread(ctx context.Context, userID int64) ([]*model.Notification, error)
		MarkRead(ctx context.Context, id, userID int64) error
	}

	SettingsRepository interface {
		Get(ctx context.Context) (*model.SystemSetting, error)
		Update(ctx context.Context, s *model.SystemSetting) error
		ListDynamicFields(ctx context.Context, formType model.FormType) ([]*model.DynamicField, error)
		CreateDynamicField(ctx context.Context, f *model.DynamicField) (*model.DynamicField, error)
	}

	AuditRepository interface {
		Create(ctx context.Context, userID int64, action, entityType string, entityID *int64, changes json.RawMessage, ip, userAgent *string) error
		List(ctx context.Context, filters *model.AuditFilters) ([]*model.AuditLog, error)
		DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	}

	RevenueRepository interface {
		Create(ctx context.Context, rec *model.RevenueRecord) (*model.RevenueRecord, error)
		MonthlyByDoctor(ctx context.Context, year int, month time.Month) ([]*model.DoctorRevenue, error)
	}

	StatisticsRepository interface {
		Daily(ctx context.Context, date time.Time) (*model.DailyStatistics, error)
	}
)
