// file: dto/submission.go
package dto

type SubmitFlagReq struct {
	Flag string `json:"flag"`
}

type SubmitQuizReq struct {
	// Question id -> selected option ids.
	Answers map[string][]string `json:"answers" binding:"required"`
}
