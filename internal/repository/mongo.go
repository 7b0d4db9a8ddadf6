package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sfsergim/CivicReport/internal/logging"
	"github.com/sfsergim/CivicReport/internal/models"
	"github.com/sfsergim/CivicReport/internal/observability"
	"github.com/sfsergim/CivicReport/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// MongoRepository stores data in MongoDB. Multi-document writes run inside
// session transactions, so the deployment must be a replica set.
type MongoRepository struct {
	db          *mongo.Database
	collections Collections
	logger      *logging.SafeLogger
}

func NewMongoRepository(db *mongo.Database, collections Collections, logger *logging.SafeLogger) *MongoRepository {
	return &MongoRepository{
		db:          db,
		collections: collections,
		logger:      logger.Named("repository"),
	}
}

func (r *MongoRepository) users() *mongo.Collection     { return r.db.Collection(r.collections.Users) }
func (r *MongoRepository) otpCodes() *mongo.Collection  { return r.db.Collection(r.collections.OtpCodes) }
func (r *MongoRepository) reports() *mongo.Collection   { return r.db.Collection(r.collections.Reports) }
func (r *MongoRepository) auditLogs() *mongo.Collection { return r.db.Collection(r.collections.AuditLogs) }

func (r *MongoRepository) Ping(ctx context.Context) error {
	return r.db.Client().Ping(ctx, readpref.Primary())
}

// record counts a database operation and normalises not-found results
func (r *MongoRepository) record(operation string, err error) error {
	switch {
	case err == nil:
		observability.DatabaseOperations.WithLabelValues(operation, "success").Inc()
		return nil
	case errors.Is(err, mongo.ErrNoDocuments), errors.Is(err, models.ErrNoDocument):
		observability.DatabaseOperations.WithLabelValues(operation, "not_found").Inc()
		return models.ErrNoDocument
	default:
		observability.DatabaseOperations.WithLabelValues(operation, "error").Inc()
		r.logger.Error("database operation failed", zap.String("operation", operation), zap.Error(err))
		return fmt.Errorf("%s: %w", operation, err)
	}
}

// withTransaction runs fn inside a session transaction
func (r *MongoRepository) withTransaction(ctx context.Context, name string, fn func(sc mongo.SessionContext) error) error {
	ctx, span, done := utils.TraceDatabaseTransaction(ctx, name)
	defer done()

	session, err := r.db.Client().StartSession()
	if err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		return fmt.Errorf("failed to start database session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil {
		utils.RecordErrorInSpan(span, err, map[string]interface{}{"transaction.type": name})
		return err
	}
	return nil
}

func (r *MongoRepository) IssueOtp(ctx context.Context, phone, name string, otp *models.OtpCode) (*models.User, error) {
	var user models.User
	err := r.withTransaction(ctx, "issue_otp", func(sc mongo.SessionContext) error {
		setOnInsert := bson.M{
			"_id":              utils.NewID(),
			"phone":            phone,
			"is_admin":         false,
			"reputation_score": 0,
			"created_at":       otp.CreatedAt,
		}
		update := bson.M{"$setOnInsert": setOnInsert}
		if name != "" {
			update["$set"] = bson.M{"name": name}
		} else {
			setOnInsert["name"] = models.PlaceholderUserName
		}

		opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
		if err := r.users().FindOneAndUpdate(sc, bson.M{"phone": phone}, update, opts).Decode(&user); err != nil {
			return err
		}

		_, err := r.otpCodes().InsertOne(sc, otp)
		return err
	})
	if err := r.record("issue_otp", err); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *MongoRepository) ConsumeOtp(ctx context.Context, phone, otpHash string, now time.Time) (*models.OtpCode, error) {
	ctx, _, done := utils.TraceDatabaseOperation(ctx, "find_one_and_update", r.collections.OtpCodes)
	defer done()

	filter := bson.M{
		"phone":      phone,
		"otp_hash":   otpHash,
		"used_at":    nil,
		"expires_at": bson.M{"$gt": now},
	}
	update := bson.M{"$set": bson.M{"used_at": now}}
	opts := options.FindOneAndUpdate().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetReturnDocument(options.After)

	var otp models.OtpCode
	err := r.otpCodes().FindOneAndUpdate(ctx, filter, update, opts).Decode(&otp)
	if err := r.record("consume_otp", err); err != nil {
		return nil, err
	}
	return &otp, nil
}

func (r *MongoRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return r.findUser(ctx, "get_user_by_id", bson.M{"_id": id})
}

func (r *MongoRepository) GetUserByPhone(ctx context.Context, phone string) (*models.User, error) {
	return r.findUser(ctx, "get_user_by_phone", bson.M{"phone": phone})
}

func (r *MongoRepository) findUser(ctx context.Context, operation string, filter bson.M) (*models.User, error) {
	ctx, _, done := utils.TraceDatabaseOperation(ctx, "find_one", r.collections.Users)
	defer done()

	var user models.User
	err := r.users().FindOne(ctx, filter).Decode(&user)
	if err := r.record(operation, err); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *MongoRepository) CountUsers(ctx context.Context) (int64, error) {
	count, err := r.users().CountDocuments(ctx, bson.M{})
	return count, r.record("count_users", err)
}

func (r *MongoRepository) InsertUsers(ctx context.Context, users []*models.User) error {
	docs := make([]interface{}, len(users))
	for i, u := range users {
		docs[i] = u
	}
	err := r.withTransaction(ctx, "insert_users", func(sc mongo.SessionContext) error {
		_, err := r.users().InsertMany(sc, docs)
		return err
	})
	return r.record("insert_users", err)
}

func (r *MongoRepository) SetUserAdmin(ctx context.Context, phone string, isAdmin bool) (*models.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user models.User
	err := r.users().FindOneAndUpdate(ctx, bson.M{"phone": phone}, bson.M{"$set": bson.M{"is_admin": isAdmin}}, opts).Decode(&user)
	if err := r.record("set_user_admin", err); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *MongoRepository) CreateReport(ctx context.Context, report *models.Report, audit *models.AuditLog) error {
	err := r.withTransaction(ctx, "create_report", func(sc mongo.SessionContext) error {
		if _, err := r.reports().InsertOne(sc, report); err != nil {
			return err
		}
		_, err := r.auditLogs().InsertOne(sc, audit)
		return err
	})
	return r.record("create_report", err)
}

func (r *MongoRepository) GetReport(ctx context.Context, id string) (*models.Report, error) {
	ctx, _, done := utils.TraceDatabaseOperation(ctx, "find_one", r.collections.Reports)
	defer done()

	var report models.Report
	err := r.reports().FindOne(ctx, bson.M{"_id": id}).Decode(&report)
	if err := r.record("get_report", err); err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *MongoRepository) ListReports(ctx context.Context, filter models.ReportFilter) ([]*models.Report, error) {
	reports := make([]*models.Report, 0)
	err := r.ForEachReport(ctx, filter, func(report *models.Report) error {
		reports = append(reports, report)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *MongoRepository) ForEachReport(ctx context.Context, filter models.ReportFilter, fn func(*models.Report) error) error {
	ctx, _, done := utils.TraceDatabaseOperation(ctx, "find", r.collections.Reports)
	defer done()

	direction := -1
	if filter.Order == models.OldestFirst {
		direction = 1
	}
	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: direction},
		{Key: "_id", Value: direction},
	})
	if filter.Skip > 0 {
		opts.SetSkip(int64(filter.Skip))
	}
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := r.reports().Find(ctx, reportQuery(filter), opts)
	if err != nil {
		return r.record("list_reports", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var report models.Report
		if err := cursor.Decode(&report); err != nil {
			return r.record("list_reports", err)
		}
		if err := fn(&report); err != nil {
			return err
		}
	}
	return r.record("list_reports", cursor.Err())
}

// reportQuery translates a filter into a MongoDB query document
func reportQuery(filter models.ReportFilter) bson.M {
	query := bson.M{}
	if filter.Category != nil {
		query["category"] = *filter.Category
	}
	if filter.Status != nil {
		query["status"] = *filter.Status
	}
	if filter.BBox != nil {
		query["location.coordinates.0"] = bson.M{"$gte": filter.BBox.MinLng, "$lte": filter.BBox.MaxLng}
		query["location.coordinates.1"] = bson.M{"$gte": filter.BBox.MinLat, "$lte": filter.BBox.MaxLat}
	}
	if filter.From != nil || filter.To != nil {
		createdAt := bson.M{}
		if filter.From != nil {
			createdAt["$gte"] = *filter.From
		}
		if filter.To != nil {
			createdAt["$lte"] = *filter.To
		}
		query["created_at"] = createdAt
	}
	return query
}

func (r *MongoRepository) CountUserReportsBetween(ctx context.Context, userID string, from, to time.Time) (int64, error) {
	ctx, _, done := utils.TraceDatabaseOperation(ctx, "count", r.collections.Reports)
	defer done()

	count, err := r.reports().CountDocuments(ctx, bson.M{
		"user_id":    userID,
		"created_at": bson.M{"$gte": from, "$lt": to},
	})
	return count, r.record("count_user_reports", err)
}

// reviewUpdate sets the moderation fields of report, unsetting nil ones
func reviewUpdate(report *models.Report) bson.M {
	set := bson.M{"status": report.Status}
	unset := bson.M{}

	if report.ModerationScore != nil {
		set["moderation_score"] = *report.ModerationScore
	} else {
		unset["moderation_score"] = ""
	}
	if report.ModerationReason != nil {
		set["moderation_reason"] = *report.ModerationReason
	} else {
		unset["moderation_reason"] = ""
	}
	if report.ValidatedAt != nil {
		set["validated_at"] = *report.ValidatedAt
	} else {
		unset["validated_at"] = ""
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	return update
}

func (r *MongoRepository) updateReview(sc mongo.SessionContext, filter bson.M, report *models.Report, audit *models.AuditLog) (bool, error) {
	result, err := r.reports().UpdateOne(sc, filter, reviewUpdate(report))
	if err != nil {
		return false, err
	}
	if result.MatchedCount == 0 {
		return false, nil
	}
	_, err = r.auditLogs().InsertOne(sc, audit)
	return err == nil, err
}

func (r *MongoRepository) UpdateReportReview(ctx context.Context, report *models.Report, audit *models.AuditLog) error {
	err := r.withTransaction(ctx, "update_report_review", func(sc mongo.SessionContext) error {
		updated, err := r.updateReview(sc, bson.M{"_id": report.ID}, report, audit)
		if err == nil && !updated {
			return fmt.Errorf("report %s: %w", report.ID, models.ErrNoDocument)
		}
		return err
	})
	return r.record("update_report_review", err)
}

func (r *MongoRepository) ApplyModeration(ctx context.Context, decisions []models.ModerationDecision) ([]models.ModerationDecision, error) {
	if len(decisions) == 0 {
		return nil, nil
	}
	var applied []models.ModerationDecision
	err := r.withTransaction(ctx, "apply_moderation", func(sc mongo.SessionContext) error {
		// the callback may be retried on transient errors
		applied = applied[:0]
		for _, d := range decisions {
			filter := bson.M{"_id": d.Report.ID, "status": models.StatusPendingModeration}
			updated, err := r.updateReview(sc, filter, d.Report, d.Audit)
			if err != nil {
				return err
			}
			if updated {
				applied = append(applied, d)
			}
		}
		return nil
	})
	if err != nil {
		return nil, r.record("apply_moderation", err)
	}
	return applied, r.record("apply_moderation", nil)
}

func (r *MongoRepository) ListAuditLogs(ctx context.Context, entityID string) ([]*models.AuditLog, error) {
	ctx, _, done := utils.TraceDatabaseOperation(ctx, "find", r.collections.AuditLogs)
	defer done()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.auditLogs().Find(ctx, bson.M{"entity_id": entityID}, opts)
	if err != nil {
		return nil, r.record("list_audit_logs", err)
	}
	defer cursor.Close(ctx)

	entries := make([]*models.AuditLog, 0)
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, r.record("list_audit_logs", err)
	}
	return entries, r.record("list_audit_logs", nil)
}

var _ Repository = (*MongoRepository)(nil)
