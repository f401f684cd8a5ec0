package practicum

import "encoding/json"

type statusesResponse struct {
	// Pointer so that a missing key can be told apart from an empty list.
	Homeworks   *[]homeworkResponse `json:"homeworks"`
	CurrentDate int64               `json:"current_date"`
}

type homeworkResponse struct {
	ID              json.Number `json:"id"`
	HomeworkName    string      `json:"homework_name"`
	LessonName      string      `json:"lesson_name"`
	Status          string      `json:"status"`
	ReviewerComment string      `json:"reviewer_comment"`
	DateUpdated     string      `json:"date_updated"`
}
