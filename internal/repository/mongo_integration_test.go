//go:build integration

package repository

import (
	"testing"

	"github.com/sfsergim/CivicReport/internal/logging"
	"github.com/sfsergim/CivicReport/internal/testsupport"
)

func TestMongoRepository(t *testing.T) {
	client := testsupport.StartMongo(t)

	runRepositoryContract(t, func(t *testing.T) Repository {
		db := testsupport.FreshDatabase(t, client)
		return NewMongoRepository(db, Collections{
			Users:     "users",
			OtpCodes:  "otp_codes",
			Reports:   "reports",
			AuditLogs: "audit_logs",
		}, logging.Logger)
	})
}
