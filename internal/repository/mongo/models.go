package mongo

import (
	"time"

	"applyapi/internal/model"
)

type resumeModel struct {
	Data        []byte `bson:"data,omitempty"`
	ContentType string `bson:"content_type"`
	Filename    string `bson:"filename"`
	Size        int64  `bson:"size"`
	Key         string `bson:"key,omitempty"`
}

type applicationModel struct {
	ID          string      `bson:"_id"`
	JobID       string      `bson:"job_id"`
	ApplicantID string      `bson:"applicant_id"`
	CoverLetter string      `bson:"cover_letter"`
	Resume      resumeModel `bson:"resume"`
	Status      string      `bson:"status"`
	Notes       string      `bson:"notes"`
	AppliedAt   time.Time   `bson:"applied_at"`
	UpdatedAt   time.Time   `bson:"updated_at"`
}

func toApplicationModel(a *model.Application) *applicationModel {
	m := &applicationModel{
		ID:          a.ID,
		JobID:       a.JobID,
		ApplicantID: a.ApplicantID,
		CoverLetter: a.CoverLetter,
		Status:      string(a.Status),
		Notes:       a.Notes,
		AppliedAt:   a.AppliedAt,
		UpdatedAt:   a.UpdatedAt,
	}
	if att := a.Attachment; att != nil {
		m.Resume = resumeModel{
			Data:        att.InlineData(),
			ContentType: att.ContentType,
			Filename:    att.Filename,
			Size:        att.Size,
			Key:         att.StorageKey,
		}
	}
	return m
}

func fromApplicationModel(m *applicationModel) *model.Application {
	return &model.Application{
		ID:          m.ID,
		JobID:       m.JobID,
		ApplicantID: m.ApplicantID,
		CoverLetter: m.CoverLetter,
		Attachment: &model.Attachment{
			Data:        m.Resume.Data,
			ContentType: m.Resume.ContentType,
			Filename:    m.Resume.Filename,
			Size:        m.Resume.Size,
			StorageKey:  m.Resume.Key,
		},
		Status:    model.Status(m.Status),
		Notes:     m.Notes,
		AppliedAt: m.AppliedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

type notificationModel struct {
	ID          string    `bson:"_id"`
	RecipientID string    `bson:"recipient_id"`
	Message     string    `bson:"message"`
	Type        string    `bson:"type"`
	RelatedItem string    `bson:"related_item,omitempty"`
	IsRead      bool      `bson:"is_read"`
	CreatedAt   time.Time `bson:"created_at"`
}

func toNotificationModel(n *model.Notification) *notificationModel {
	return &notificationModel{
		ID:          n.ID,
		RecipientID: n.RecipientID,
		Message:     n.Message,
		Type:        string(n.Type),
		RelatedItem: n.RelatedItem,
		IsRead:      n.IsRead,
		CreatedAt:   n.CreatedAt,
	}
}

type jobModel struct {
	ID         string     `bson:"_id"`
	EmployerID string     `bson:"employer_id"`
	Title      string     `bson:"title"`
	Status     string     `bson:"status"`
	Deadline   *time.Time `bson:"deadline,omitempty"`
}

func fromJobModel(m *jobModel) *model.Job {
	j := &model.Job{
		ID:             m.ID,
		EmployerID:     m.EmployerID,
		Title:          m.Title,
		ApprovalStatus: m.Status,
	}
	if m.Deadline != nil {
		j.Deadline = m.Deadline.UTC()
	}
	return j
}

func (m *jobModel) summary() *model.JobSummary {
	s := &model.JobSummary{
		ID:         m.ID,
		Title:      m.Title,
		EmployerID: m.EmployerID,
		Status:     m.Status,
	}
	if m.Deadline != nil {
		d := m.Deadline.UTC()
		s.Deadline = &d
	}
	return s
}

type userModel struct {
	ID          string   `bson:"_id"`
	Name        string   `bson:"name"`
	Email       string   `bson:"email"`
	Role        string   `bson:"role"`
	Photo       string   `bson:"photo,omitempty"`
	Skills      []string `bson:"skills,omitempty"`
	CompanyName string   `bson:"company_name,omitempty"`
}

func fromUserModel(m *userModel) *model.User {
	return &model.User{
		ID:          m.ID,
		Name:        m.Name,
		Email:       m.Email,
		Role:        model.Role(m.Role),
		Photo:       m.Photo,
		Skills:      m.Skills,
		CompanyName: m.CompanyName,
	}
}

func (m *userModel) profile() *model.ApplicantProfile {
	return &model.ApplicantProfile{
		ID:     m.ID,
		Name:   m.Name,
		Email:  m.Email,
		Photo:  m.Photo,
		Skills: m.Skills,
	}
}
