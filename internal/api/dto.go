package api

import (
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/anilvs/casetrack/internal/model"
)

type complaintDTO struct {
	ID                string     `json:"id"`
	ReferenceNumber   string     `json:"reference_number"`
	CitizenID         string     `json:"citizen_id,omitempty"`
	CitizenName       string     `json:"citizen_name"`
	CitizenEmail      string     `json:"citizen_email"`
	CitizenPhone      string     `json:"citizen_phone"`
	CrimeType         string     `json:"crime_type"`
	Description       string     `json:"description"`
	Location          string     `json:"location"`
	Latitude          *float64   `json:"latitude,omitempty"`
	Longitude         *float64   `json:"longitude,omitempty"`
	IncidentDate      time.Time  `json:"incident_date"`
	Severity          string     `json:"severity"`
	SeverityScore     float64    `json:"severity_score"`
	Status            string     `json:"status"`
	DateFiled         time.Time  `json:"date_filed"`
	AssignedOfficerID string     `json:"assigned_officer_id,omitempty"`
}

func toComplaintDTO(c *model.Complaint) complaintDTO {
	d := complaintDTO{
		ID:              c.ID.String(),
		ReferenceNumber: c.ReferenceNumber,
		CitizenName:     c.CitizenName,
		CitizenEmail:    c.CitizenEmail,
		CitizenPhone:    c.CitizenPhone,
		CrimeType:       c.CrimeType,
		Description:     c.Description,
		Location:        c.Location,
		Latitude:        c.Latitude,
		Longitude:       c.Longitude,
		IncidentDate:    c.IncidentDate,
		Severity:        string(c.Severity),
		SeverityScore:   c.SeverityScore,
		Status:          string(c.Status),
		DateFiled:       c.DateFiled,
	}
	if c.CitizenID != uuid.Nil {
		d.CitizenID = c.CitizenID.String()
	}
	if c.AssignedOfficerID != uuid.Nil {
		d.AssignedOfficerID = c.AssignedOfficerID.String()
	}
	return d
}

func toComplaintDTOs(cs []model.Complaint) []complaintDTO {
	out := make([]complaintDTO, 0, len(cs))
	for i := range cs {
		out = append(out, toComplaintDTO(&cs[i]))
	}
	return out
}

type caseDTO struct {
	ID             string    `json:"id"`
	ComplaintID    string    `json:"complaint_id"`
	OfficerID      string    `json:"officer_id"`
	Status         string    `json:"status"`
	ReportRef      string    `json:"report_ref,omitempty"`
	DateRegistered time.Time `json:"date_registered"`
}

func toCaseDTO(cs *model.Case) caseDTO {
	return caseDTO{
		ID:             cs.ID.String(),
		ComplaintID:    cs.ComplaintID.String(),
		OfficerID:      cs.OfficerID.String(),
		Status:         string(cs.Status),
		ReportRef:      cs.ReportRef,
		DateRegistered: cs.DateRegistered,
	}
}

type caseUpdateDTO struct {
	ID        string    `json:"id"`
	CaseID    string    `json:"case_id"`
	OfficerID string    `json:"officer_id"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toCaseUpdateDTOs(us []model.CaseUpdate) []caseUpdateDTO {
	out := make([]caseUpdateDTO, 0, len(us))
	for _, u := range us {
		out = append(out, caseUpdateDTO{
			ID:        u.ID.String(),
			CaseID:    u.CaseID.String(),
			OfficerID: u.OfficerID.String(),
			Status:    string(u.Status),
			Notes:     u.Notes,
			CreatedAt: u.CreatedAt,
		})
	}
	return out
}

type lawDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Punishment  string `json:"punishment"`
}

func toLawDTOs(ls []model.Law) []lawDTO {
	out := make([]lawDTO, 0, len(ls))
	for _, l := range ls {
		out = append(out, lawDTO{
			ID:          l.ID.String(),
			Title:       l.Title,
			Description: l.Descr,
			Category:    l.Category,
			Punishment:  l.Punishment,
		})
	}
	return out
}

type evidenceDTO struct {
	ID          string    `json:"id"`
	ComplaintID string    `json:"complaint_id"`
	FileName    string    `json:"file_name"`
	FileType    string    `json:"file_type"`
	SizeBytes   int64     `json:"size_bytes"`
	UploadedBy  string    `json:"uploaded_by,omitempty"`
	Description string    `json:"description,omitempty"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

func toEvidenceDTO(e *model.Evidence) evidenceDTO {
	return evidenceDTO{
		ID:          e.ID.String(),
		ComplaintID: e.ComplaintID.String(),
		FileName:    e.FileName,
		FileType:    e.FileType,
		SizeBytes:   e.SizeBytes,
		UploadedBy:  e.UploadedBy,
		Description: e.Description,
		UploadedAt:  e.UploadedAt,
	}
}

func toEvidenceDTOs(es []model.Evidence) []evidenceDTO {
	out := make([]evidenceDTO, 0, len(es))
	for i := range es {
		out = append(out, toEvidenceDTO(&es[i]))
	}
	return out
}

type userDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	District    string `json:"district,omitempty"`
	BadgeNumber string `json:"badge_number,omitempty"`
	Department  string `json:"department,omitempty"`
}

func toUserDTO(u *model.User) userDTO {
	return userDTO{
		ID:          u.ID.String(),
		Name:        u.Name,
		Role:        string(u.Role),
		Email:       u.Email,
		Phone:       u.Phone,
		District:    u.District,
		BadgeNumber: u.BadgeNumber,
		Department:  u.Department,
	}
}
