package service

import (
	"errors"
	"fmt"
)

var (
	// ErrModelNotReady is returned by predictions made before training completed.
	ErrModelNotReady = errors.New("model not trained yet")
	// ErrAlreadyTrained is returned when Train is called a second time.
	ErrAlreadyTrained = errors.New("model training already started")
	// ErrTrainingFailed wraps every startup training failure.
	ErrTrainingFailed = errors.New("model training failed")
)

// InferenceError is an unexpected failure while vectorizing or predicting.
type InferenceError struct {
	Err error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("inference failed: %v", e.Err)
}

func (e *InferenceError) Unwrap() error {
	return e.Err
}
