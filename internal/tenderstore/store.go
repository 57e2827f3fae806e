// internal/tenderstore/store.go
package tenderstore

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"tender-workers/internal/common/errors"
	"tender-workers/internal/common/logger"
	"tender-workers/internal/models"

	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

const (
	policyCacheKeyPrefix = "tender:policy:"
	keywordsCacheKey     = "tender:negative-keywords"
)

// Store reads policies, keywords and tenders from Postgres and writes analysis
// results back. Policies and keywords are cached in Redis when a client is set.
type Store struct {
	db       *sql.DB
	cache    *redis.Client
	cacheTTL time.Duration
	logger   logger.Logger
}

func New(db *sql.DB, cache *redis.Client, cacheTTL time.Duration, log logger.Logger) *Store {
	return &Store{
		db:       db,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   log.WithFields(map[string]interface{}{"component": "tenderstore"}),
	}
}

func policyCacheKey(policyID string) string {
	return policyCacheKeyPrefix + policyID
}

// LoadPolicy returns the validated company policy.
func (s *Store) LoadPolicy(ctx context.Context, policyID string) (models.CompanyPolicy, error) {
	var policy models.CompanyPolicy
	if s.getCached(ctx, policyCacheKey(policyID), &policy) {
		return policy, nil
	}

	var ceiling string
	var rawTypes []byte
	query := `SELECT turnover_ceiling_lakhs, project_types FROM company_policies WHERE id = $1`
	err := s.db.QueryRowContext(ctx, query, policyID).Scan(&ceiling, &rawTypes)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return models.CompanyPolicy{}, errors.NewPolicyInvalidError(
				fmt.Sprintf("policy %s not found", policyID))
		}
		return models.CompanyPolicy{}, errors.NewPolicyLoadFailedError(err)
	}

	var projectTypes []string
	if len(rawTypes) > 0 {
		if err := json.Unmarshal(rawTypes, &projectTypes); err != nil {
			return models.CompanyPolicy{}, errors.NewPolicyInvalidError(
				fmt.Sprintf("project types: %v", err))
		}
	}

	policy, err = ParsePolicy(ceiling, projectTypes)
	if err != nil {
		return models.CompanyPolicy{}, err
	}

	s.setCached(ctx, policyCacheKey(policyID), policy)
	return policy, nil
}

// LoadNegativeKeywords returns the configured keywords in insertion order.
func (s *Store) LoadNegativeKeywords(ctx context.Context) ([]models.NegativeKeyword, error) {
	var keywords []models.NegativeKeyword
	if s.getCached(ctx, keywordsCacheKey, &keywords) {
		return keywords, nil
	}

	query := `SELECT keyword, COALESCE(description, '') FROM negative_keywords ORDER BY id`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.NewKeywordsLoadFailedError(err)
	}
	defer rows.Close()

	keywords = []models.NegativeKeyword{}
	for rows.Next() {
		var kw models.NegativeKeyword
		if err := rows.Scan(&kw.Keyword, &kw.Description); err != nil {
			return nil, errors.NewKeywordsLoadFailedError(err)
		}
		keywords = append(keywords, kw)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewKeywordsLoadFailedError(err)
	}

	s.setCached(ctx, keywordsCacheKey, keywords)
	return keywords, nil
}

// InvalidateCache drops the cached policy and keywords so the next load reads
// Postgres.
func (s *Store) InvalidateCache(ctx context.Context, policyID string) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Del(ctx, policyCacheKey(policyID), keywordsCacheKey).Err()
}

const tenderColumns = `id, external_id, title, COALESCE(eligibility_criteria, ''), COALESCE(checklist, ''),
	COALESCE(similar_category, ''), excel_msme_exemption, excel_startup_exemption`

func scanTender(row interface{ Scan(...interface{}) error }) (models.StoredTender, error) {
	var t models.StoredTender
	err := row.Scan(
		&t.ID, &t.ExternalID, &t.Text.Title, &t.Text.EligibilityCriteria, &t.Text.Checklist,
		&t.Text.SimilarCategory, &t.ExcelMsmeExemption, &t.ExcelStartupExemption,
	)
	return t, err
}

// GetTender loads one tender by id.
func (s *Store) GetTender(ctx context.Context, tenderID string) (models.StoredTender, error) {
	query := `SELECT ` + tenderColumns + ` FROM tenders WHERE id = $1`
	t, err := scanTender(s.db.QueryRowContext(ctx, query, tenderID))
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return models.StoredTender{}, errors.NewTenderNotFoundError(tenderID)
		}
		return models.StoredTender{}, errors.NewTenderLookupFailedError(err)
	}
	return t, nil
}

// ListTenders loads the given tenders, or every tender when ids is empty.
func (s *Store) ListTenders(ctx context.Context, ids []string) ([]models.StoredTender, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if len(ids) == 0 {
		rows, err = s.db.QueryContext(ctx, `SELECT `+tenderColumns+` FROM tenders ORDER BY id`)
	} else {
		rows, err = s.db.QueryContext(ctx, `SELECT `+tenderColumns+` FROM tenders WHERE id = ANY($1) ORDER BY id`, pq.Array(ids))
	}
	if err != nil {
		return nil, errors.NewTenderLookupFailedError(err)
	}
	defer rows.Close()

	tenders := []models.StoredTender{}
	for rows.Next() {
		t, err := scanTender(rows)
		if err != nil {
			return nil, errors.NewTenderLookupFailedError(err)
		}
		tenders = append(tenders, t)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewTenderLookupFailedError(err)
	}
	return tenders, nil
}

// SaveResult replaces the stored analysis of a tender.
func (s *Store) SaveResult(ctx context.Context, tenderID string, result models.MatchResult) error {
	analysis, err := json.Marshal(result)
	if err != nil {
		return errors.NewResultPersistFailedError(tenderID, err)
	}

	query := `UPDATE tenders
		SET match_percentage = $2, eligibility_status = $3, analysis_status = $4, analysis = $5, analyzed_at = $6
		WHERE id = $1`
	res, err := s.db.ExecContext(ctx, query,
		tenderID, result.MatchPercentage, string(result.EligibilityStatus), string(result.AnalysisStatus),
		analysis, time.Now().UTC(),
	)
	if err != nil {
		return errors.NewResultPersistFailedError(tenderID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.NewResultPersistFailedError(tenderID, err)
	}
	if affected == 0 {
		return errors.NewTenderNotFoundError(tenderID)
	}
	return nil
}

// PreviousTender is the latest stored publication of a tender.
type PreviousTender struct {
	ID     string
	Record models.TenderRecord
}

// FindPreviousRecord returns the latest stored publication with the given
// external id, skipping excludeID. It returns nil when there is none.
func (s *Store) FindPreviousRecord(ctx context.Context, externalID, excludeID string) (*PreviousTender, error) {
	query := `SELECT id, title, department, organization, estimated_value, emd, turnover_requirement,
			submission_deadline, opening_date, eligibility_criteria, checklist
		FROM tenders
		WHERE external_id = $1 AND id <> $2
		ORDER BY created_at DESC
		LIMIT 1`

	var (
		id                                                  string
		title                                               string
		department, organization, estimatedValue, emd       sql.NullString
		turnoverRequirement, eligibilityCriteria, checklist sql.NullString
		submissionDeadline, openingDate                     sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, query, externalID, excludeID).Scan(
		&id, &title, &department, &organization, &estimatedValue, &emd, &turnoverRequirement,
		&submissionDeadline, &openingDate, &eligibilityCriteria, &checklist,
	)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.NewTenderLookupFailedError(err)
	}

	return &PreviousTender{
		ID: id,
		Record: models.TenderRecord{
			"title":               title,
			"department":          nullString(department),
			"organization":        nullString(organization),
			"estimatedValue":      nullString(estimatedValue),
			"emd":                 nullString(emd),
			"turnoverRequirement": nullString(turnoverRequirement),
			"submissionDeadline":  nullTime(submissionDeadline),
			"openingDate":         nullTime(openingDate),
			"eligibilityCriteria": nullString(eligibilityCriteria),
			"checklist":           nullString(checklist),
		},
	}, nil
}

func nullString(v sql.NullString) interface{} {
	if !v.Valid {
		return nil
	}
	return v.String
}

func nullTime(v sql.NullTime) interface{} {
	if !v.Valid {
		return nil
	}
	return v.Time
}

func (s *Store) getCached(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	val, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		if !stderrors.Is(err, redis.Nil) {
			s.logger.Warn("cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
		}
		return false
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		s.logger.Warn("discarding malformed cache entry", map[string]interface{}{"key": key, "error": err.Error()})
		return false
	}
	return true
}

func (s *Store) setCached(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
}
