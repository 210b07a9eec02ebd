package service

import "errors"

var (
	ErrTeacherNotFound  = errors.New("teacher not found")
	ErrInvalidTeacherID = errors.New("invalid teacher id")
	ErrInvalidToken     = errors.New("invalid token")
	ErrTokenAlreadyUsed = errors.New("token already used")
	ErrForbidden        = errors.New("dashboard only for teachers")
	ErrAlreadyTeacher   = errors.New("user is already a teacher")
)
