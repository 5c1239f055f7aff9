package api

import (
	"context"
	"time"
)

type Organization struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	OwnerID     int        `json:"owner_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

type OrganizationRequest struct {
	Name        string  `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

type Member struct {
	ID             int        `json:"id"`
	OrganizationID int        `json:"organization_id"`
	UserID         int        `json:"user_id"`
	Role           string     `json:"role"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

type MemberRequest struct {
	UserID int    `json:"user_id,omitempty"`
	Role   string `json:"role,omitempty"`
}

type Department struct {
	ID             int          `json:"id"`
	OrganizationID int          `json:"organization_id"`
	Name           string       `json:"name"`
	Code           *string      `json:"code,omitempty"`
	Description    *string      `json:"description,omitempty"`
	ParentID       *int         `json:"parent_id,omitempty"`
	Level          int          `json:"level"`
	IsActive       bool         `json:"is_active"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
	Children       []Department `json:"children,omitempty"`
}

type DepartmentRequest struct {
	Name        string  `json:"name,omitempty"`
	Code        *string `json:"code,omitempty"`
	Description *string `json:"description,omitempty"`
	ParentID    *int    `json:"parent_id,omitempty"`
}

// Participant is a survey respondent registered with an organization (not necessarily a user account)
type Participant struct {
	ID             int     `json:"id"`
	OrganizationID int     `json:"organization_id"`
	Name           string  `json:"name"`
	Email          *string `json:"email,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	DepartmentID   *int    `json:"department_id,omitempty"`
	Position       *string `json:"position,omitempty"`
}

type ParticipantRequest struct {
	Name         string  `json:"name,omitempty"`
	Email        *string `json:"email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	DepartmentID *int    `json:"department_id,omitempty"`
	Position     *string `json:"position,omitempty"`
}

type Organizations struct {
	r Requester
}

func (o *Organizations) List(ctx context.Context, params Params) ([]Organization, error) {
	var orgs []Organization
	if err := get(ctx, o.r, "/organizations/", params, &orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}

// ListPublic lists the organizations shown on the registration and survey fill pages
func (o *Organizations) ListPublic(ctx context.Context, params Params) ([]Organization, error) {
	var orgs []Organization
	if err := get(ctx, o.r, "/organizations/public/", params, &orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}

func (o *Organizations) Get(ctx context.Context, id int) (*Organization, error) {
	var org Organization
	if err := get(ctx, o.r, path("/organizations/%d", id), nil, &org); err != nil {
		return nil, err
	}
	return &org, nil
}

func (o *Organizations) Create(ctx context.Context, req OrganizationRequest) (*Organization, error) {
	var org Organization
	if err := post(ctx, o.r, "/organizations/", req, &org); err != nil {
		return nil, err
	}
	return &org, nil
}

func (o *Organizations) Update(ctx context.Context, id int, req OrganizationRequest) (*Organization, error) {
	var org Organization
	if err := put(ctx, o.r, path("/organizations/%d", id), req, &org); err != nil {
		return nil, err
	}
	return &org, nil
}

func (o *Organizations) Delete(ctx context.Context, id int) error {
	return del(ctx, o.r, path("/organizations/%d", id))
}

// members

func (o *Organizations) Members(ctx context.Context, orgID int, params Params) ([]Member, error) {
	var members []Member
	if err := get(ctx, o.r, path("/organizations/%d/members", orgID), params, &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (o *Organizations) Member(ctx context.Context, orgID, memberID int) (*Member, error) {
	var member Member
	if err := get(ctx, o.r, path("/organizations/%d/members/%d", orgID, memberID), nil, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

func (o *Organizations) AddMember(ctx context.Context, orgID int, req MemberRequest) (*Member, error) {
	var member Member
	if err := post(ctx, o.r, path("/organizations/%d/members", orgID), req, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

func (o *Organizations) UpdateMember(ctx context.Context, orgID, memberID int, req MemberRequest) (*Member, error) {
	var member Member
	if err := put(ctx, o.r, path("/organizations/%d/members/%d", orgID, memberID), req, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

func (o *Organizations) RemoveMember(ctx context.Context, orgID, memberID int) error {
	return del(ctx, o.r, path("/organizations/%d/members/%d", orgID, memberID))
}

// departments

func (o *Organizations) Departments(ctx context.Context, orgID int, params Params) ([]Department, error) {
	var depts []Department
	if err := get(ctx, o.r, path("/organizations/%d/departments", orgID), params, &depts); err != nil {
		return nil, err
	}
	return depts, nil
}

func (o *Organizations) DepartmentTree(ctx context.Context, orgID int) ([]Department, error) {
	var tree []Department
	if err := get(ctx, o.r, path("/organizations/%d/departments/tree", orgID), nil, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// PublicDepartments is used on the survey fill page, where respondents are not logged in
func (o *Organizations) PublicDepartments(ctx context.Context, orgID int, params Params) ([]Department, error) {
	var depts []Department
	if err := get(ctx, o.r, path("/organizations/%d/departments/public", orgID), params, &depts); err != nil {
		return nil, err
	}
	return depts, nil
}

func (o *Organizations) Department(ctx context.Context, orgID, deptID int) (*Department, error) {
	var dept Department
	if err := get(ctx, o.r, path("/organizations/%d/departments/%d", orgID, deptID), nil, &dept); err != nil {
		return nil, err
	}
	return &dept, nil
}

func (o *Organizations) CreateDepartment(ctx context.Context, orgID int, req DepartmentRequest) (*Department, error) {
	var dept Department
	if err := post(ctx, o.r, path("/organizations/%d/departments", orgID), req, &dept); err != nil {
		return nil, err
	}
	return &dept, nil
}

func (o *Organizations) UpdateDepartment(ctx context.Context, orgID, deptID int, req DepartmentRequest) (*Department, error) {
	var dept Department
	if err := put(ctx, o.r, path("/organizations/%d/departments/%d", orgID, deptID), req, &dept); err != nil {
		return nil, err
	}
	return &dept, nil
}

func (o *Organizations) DeleteDepartment(ctx context.Context, orgID, deptID int) error {
	return del(ctx, o.r, path("/organizations/%d/departments/%d", orgID, deptID))
}

// participants

func (o *Organizations) Participants(ctx context.Context, orgID int, params Params) ([]Participant, error) {
	var participants []Participant
	if err := get(ctx, o.r, path("/organizations/%d/participants", orgID), params, &participants); err != nil {
		return nil, err
	}
	return participants, nil
}

func (o *Organizations) CreateParticipant(ctx context.Context, orgID int, req ParticipantRequest) (*Participant, error) {
	var participant Participant
	if err := post(ctx, o.r, path("/organizations/%d/participants", orgID), req, &participant); err != nil {
		return nil, err
	}
	return &participant, nil
}

func (o *Organizations) UpdateParticipant(ctx context.Context, orgID, participantID int, req ParticipantRequest) (*Participant, error) {
	var participant Participant
	if err := put(ctx, o.r, path("/organizations/%d/participants/%d", orgID, participantID), req, &participant); err != nil {
		return nil, err
	}
	return &participant, nil
}

func (o *Organizations) DeleteParticipant(ctx context.Context, orgID, participantID int) error {
	return del(ctx, o.r, path("/organizations/%d/participants/%d", orgID, participantID))
}
