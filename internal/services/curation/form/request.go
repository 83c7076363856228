package form

// Question is one requirement row as sent to the curation webhook.
type Question struct {
	ID            int    `json:"id"`
	Class         string `json:"class"`
	Chapter       string `json:"chapter"`
	QuestionType  string `json:"questionType"`
	QuestionCount string `json:"questionCount"`
}

// Request is the curation webhook payload.
type Request struct {
	TestName  string     `json:"testName"`
	Questions []Question `json:"questions"`
}

// Request builds the webhook payload from the current rows, in order, with
// values exactly as entered.
func (f *Form) Request() Request {
	questions := make([]Question, 0, len(f.rows))
	for _, row := range f.rows {
		questions = append(questions, Question(row))
	}
	return Request{TestName: f.TestName, Questions: questions}
}
