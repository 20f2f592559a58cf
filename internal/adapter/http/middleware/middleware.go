package middleware

import (
	"github.com/Temutjin2k/geo-attendance/pkg/logger"
)

type Middleware struct {
	admin Credentials
	log   logger.Logger
}

func NewMiddleware(admin Credentials, log logger.Logger) *Middleware {
	return &Middleware{
		admin: admin,
		log:   log,
	}
}
