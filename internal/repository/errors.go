package repository

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrDuplicateEmail  = errors.New("email already exists")
	ErrReviewNotFound  = errors.New("review not found")
	ErrReportNotFound  = errors.New("report not found")
	ErrRequestNotFound = errors.New("landlord request not found")
)
