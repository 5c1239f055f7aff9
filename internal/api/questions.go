package api

import (
	"context"
	"encoding/json"
)

// Question types accepted by the survey API
const (
	QuestionSingleChoice = "single_choice"
	QuestionMultiChoice  = "multi_choice"
	QuestionTextInput    = "text_input"
	QuestionNumberInput  = "number_input"
	QuestionSortOrder    = "sort_order"
)

// Options are either plain strings or {text, score, is_correct} objects so they are kept as raw json
type Question struct {
	ID               int               `json:"id"`
	SurveyID         *int              `json:"survey_id,omitempty"`
	Text             string            `json:"text"`
	Type             string            `json:"type"`
	IsRequired       bool              `json:"is_required"`
	Order            int               `json:"order"`
	CategoryID       *int              `json:"category_id,omitempty"`
	Options          []json.RawMessage `json:"options,omitempty"`
	MinScore         *int              `json:"min_score,omitempty"`
	MaxScore         *int              `json:"max_score,omitempty"`
	Tags             []string          `json:"tags,omitempty"`
	ParentQuestionID *int              `json:"parent_question_id,omitempty"`
	TriggerOptions   []map[string]any  `json:"trigger_options,omitempty"`
}

type QuestionOption struct {
	Text      string `json:"text"`
	Score     *int   `json:"score,omitempty"`
	IsCorrect bool   `json:"is_correct,omitempty"`
}

type QuestionRequest struct {
	Text             string           `json:"text"`
	Type             string           `json:"type"`
	IsRequired       bool             `json:"is_required"`
	Order            int              `json:"order"`
	CategoryID       *int             `json:"category_id,omitempty"`
	Options          []QuestionOption `json:"options,omitempty"`
	MinScore         *int             `json:"min_score,omitempty"`
	MaxScore         *int             `json:"max_score,omitempty"`
	Tags             []string         `json:"tags,omitempty"`
	ParentQuestionID *int             `json:"parent_question_id,omitempty"`
	TriggerOptions   []map[string]any `json:"trigger_options,omitempty"`
}

type Category struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	ParentID    *int       `json:"parent_id,omitempty"`
	Children    []Category `json:"children,omitempty"`
}

type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ParentID    *int   `json:"parent_id,omitempty"`
}

type MoveCategoryRequest struct {
	NewParentID *int `json:"new_parent_id"`
}

type Tag struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

type TagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

type Questions struct {
	r Requester
}

// global question bank

func (q *Questions) List(ctx context.Context, params Params) ([]Question, error) {
	var questions []Question
	if err := get(ctx, q.r, "/questions/", params, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (q *Questions) Get(ctx context.Context, id int) (*Question, error) {
	var question Question
	if err := get(ctx, q.r, path("/questions/%d", id), nil, &question); err != nil {
		return nil, err
	}
	return &question, nil
}

func (q *Questions) Create(ctx context.Context, req QuestionRequest) (*Question, error) {
	var question Question
	if err := post(ctx, q.r, "/questions/", req, &question); err != nil {
		return nil, err
	}
	return &question, nil
}

func (q *Questions) Update(ctx context.Context, id int, req QuestionRequest) (*Question, error) {
	var question Question
	if err := put(ctx, q.r, path("/questions/%d", id), req, &question); err != nil {
		return nil, err
	}
	return &question, nil
}

func (q *Questions) Delete(ctx context.Context, id int) error {
	return del(ctx, q.r, path("/questions/%d", id))
}

// questions belonging to a survey

func (q *Questions) AddToSurvey(ctx context.Context, surveyID int, req QuestionRequest) (*Question, error) {
	var question Question
	if err := post(ctx, q.r, path("/surveys/%d/questions/", surveyID), req, &question); err != nil {
		return nil, err
	}
	return &question, nil
}

func (q *Questions) ListForSurvey(ctx context.Context, surveyID int, params Params) ([]Question, error) {
	var questions []Question
	if err := get(ctx, q.r, path("/surveys/%d/questions/", surveyID), params, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (q *Questions) UpdateInSurvey(ctx context.Context, surveyID, questionID int, req QuestionRequest) (*Question, error) {
	var question Question
	if err := put(ctx, q.r, path("/surveys/%d/questions/%d", surveyID, questionID), req, &question); err != nil {
		return nil, err
	}
	return &question, nil
}

func (q *Questions) DeleteFromSurvey(ctx context.Context, surveyID, questionID int) error {
	return del(ctx, q.r, path("/surveys/%d/questions/%d", surveyID, questionID))
}

// Reorder sets the display order of a survey's questions
func (q *Questions) Reorder(ctx context.Context, surveyID int, questionIDs []int) error {
	body := map[string][]int{"question_ids": questionIDs}
	return put(ctx, q.r, path("/surveys/%d/questions/reorder", surveyID), body, nil)
}

// organization question bank

func (q *Questions) ListForOrganization(ctx context.Context, orgID int, params Params) ([]Question, error) {
	var questions []Question
	if err := get(ctx, q.r, path("/organizations/%d/questions/", orgID), params, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (q *Questions) CreateForOrganization(ctx context.Context, orgID int, req QuestionRequest) (*Question, error) {
	var question Question
	if err := post(ctx, q.r, path("/organizations/%d/questions/", orgID), req, &question); err != nil {
		return nil, err
	}
	return &question, nil
}

// categories

func (q *Questions) Categories(ctx context.Context, params Params) ([]Category, error) {
	var categories []Category
	if err := get(ctx, q.r, "/categories", params, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (q *Questions) CategoryTree(ctx context.Context, params Params) ([]Category, error) {
	var tree []Category
	if err := get(ctx, q.r, "/categories/tree", params, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}

func (q *Questions) Category(ctx context.Context, id int) (*Category, error) {
	var category Category
	if err := get(ctx, q.r, path("/categories/%d", id), nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (q *Questions) CreateCategory(ctx context.Context, req CategoryRequest) (*Category, error) {
	var category Category
	if err := post(ctx, q.r, "/categories", req, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (q *Questions) UpdateCategory(ctx context.Context, id int, req CategoryRequest) (*Category, error) {
	var category Category
	if err := put(ctx, q.r, path("/categories/%d", id), req, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (q *Questions) DeleteCategory(ctx context.Context, id int) error {
	return del(ctx, q.r, path("/categories/%d", id))
}

func (q *Questions) MoveCategory(ctx context.Context, id int, req MoveCategoryRequest) (*Category, error) {
	var category Category
	if err := post(ctx, q.r, path("/categories/%d/move", id), req, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (q *Questions) CategoryChildren(ctx context.Context, id int) ([]Category, error) {
	var children []Category
	if err := get(ctx, q.r, path("/categories/%d/children", id), nil, &children); err != nil {
		return nil, err
	}
	return children, nil
}

// tags

func (q *Questions) Tags(ctx context.Context, params Params) ([]Tag, error) {
	var tags []Tag
	if err := get(ctx, q.r, "/question-tags/", params, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func (q *Questions) CreateTag(ctx context.Context, req TagRequest) (*Tag, error) {
	var tag Tag
	if err := post(ctx, q.r, "/question-tags/", req, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

func (q *Questions) DeleteTag(ctx context.Context, id int) error {
	return del(ctx, q.r, path("/question-tags/%d", id))
}
