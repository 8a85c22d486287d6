// Package validation holds the pure domain checks that gate every quiz and
// question mutation. The checks never touch storage and never stop at the
// first violation: every problem in a payload is reported at once so the
// editor can surface all of them in a single pass.
package validation

import (
	"fmt"
	"strings"
)

const (
	QuizTitleMax    = 200
	QuestionTextMax = 1200
	OptionTextMax   = 500
	OptionsMin      = 2
	OptionsMax      = 5
)

// FieldError describes a single violation attributed to one input field.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// OptionInput is the slice element ValidateQuestion checks. Only the fields
// the gate cares about are present; ids and ordering are storage concerns.
type OptionInput struct {
	Text      string
	IsCorrect bool
}

func fieldError(field, code, message string) FieldError {
	return FieldError{Field: field, Code: code, Message: message}
}

// ValidateQuizTitle checks a proposed quiz title. A nil return means valid.
func ValidateQuizTitle(title string) []FieldError {
	var errs []FieldError
	trimmed := strings.TrimSpace(title)

	if trimmed == "" {
		errs = append(errs, fieldError("title", "required", "Quiz title is required."))
	}
	if len([]rune(trimmed)) > QuizTitleMax {
		errs = append(errs, fieldError("title", "max_length",
			fmt.Sprintf("Quiz title must be %d characters or fewer.", QuizTitleMax)))
	}
	return errs
}

// ValidateQuestion checks a proposed question text together with its full
// option list. Option texts are compared case-insensitively after trimming.
func ValidateQuestion(text string, options []OptionInput) []FieldError {
	var errs []FieldError
	trimmed := strings.TrimSpace(text)

	if trimmed == "" {
		errs = append(errs, fieldError("text", "required", "Question text is required."))
	}
	if len([]rune(trimmed)) > QuestionTextMax {
		errs = append(errs, fieldError("text", "max_length",
			fmt.Sprintf("Question text must be %d characters or fewer.", QuestionTextMax)))
	}

	if len(options) < OptionsMin || len(options) > OptionsMax {
		errs = append(errs, fieldError("options", "count",
			fmt.Sprintf("Question must have %d-%d options.", OptionsMin, OptionsMax)))
	}

	seen := make(map[string]struct{}, len(options))
	correctCount := 0

	for i, option := range options {
		optionText := strings.TrimSpace(option.Text)
		field := fmt.Sprintf("options[%d].text", i)

		if optionText == "" {
			errs = append(errs, fieldError(field, "required", "Option text is required."))
		}
		if len([]rune(optionText)) > OptionTextMax {
			errs = append(errs, fieldError(field, "max_length",
				fmt.Sprintf("Option text must be %d characters or fewer.", OptionTextMax)))
		}

		if optionText != "" {
			key := strings.ToLower(optionText)
			if _, dup := seen[key]; dup {
				errs = append(errs, fieldError(field, "duplicate", "Option text must be unique."))
			}
			seen[key] = struct{}{}
		}

		if option.IsCorrect {
			correctCount++
		}
	}

	if correctCount != 1 {
		errs = append(errs, fieldError("options", "correct_count",
			"Exactly one option must be marked correct."))
	}

	return errs
}
