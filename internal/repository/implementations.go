package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/votervision/backend/internal/models"
)

// candidateRepository implements models.CandidateRepository using GORM.
type candidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) models.CandidateRepository {
	return &candidateRepository{db: db}
}

// Create persists a candidate, deriving a unique slug from the name.
// Collisions get a numeric suffix: kp-sharma-oli, kp-sharma-oli-1, ...
func (r *candidateRepository) Create(candidate *models.Candidate) error {
	if candidate.Slug == "" {
		unique, err := r.uniqueSlug(candidate.Name)
		if err != nil {
			return err
		}
		candidate.Slug = unique
	}
	return r.db.Create(candidate).Error
}

func (r *candidateRepository) uniqueSlug(name string) (string, error) {
	base := slug.Make(name)
	candidate := base
	for n := 1; ; n++ {
		exists, err := r.SlugExists(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}

func (r *candidateRepository) GetByID(id uint) (*models.Candidate, error) {
	var candidate models.Candidate
	err := r.db.Preload("Manifestos").First(&candidate, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("candidate not found")
		}
		return nil, err
	}
	return &candidate, nil
}

func (r *candidateRepository) GetBySlug(slugValue string) (*models.Candidate, error) {
	var candidate models.Candidate
	err := r.db.Preload("Manifestos").Where("slug = ?", slugValue).First(&candidate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("candidate not found")
		}
		return nil, err
	}
	return &candidate, nil
}

func (r *candidateRepository) GetByIDs(ids []uint) ([]models.Candidate, error) {
	var candidates []models.Candidate
	err := r.db.Where("id IN ?", ids).Find(&candidates).Error
	return candidates, err
}

func (r *candidateRepository) GetAll() ([]models.Candidate, error) {
	var candidates []models.Candidate
	err := r.db.Order("name ASC").Find(&candidates).Error
	return candidates, err
}

func (r *candidateRepository) GetActive() ([]models.Candidate, error) {
	var candidates []models.Candidate
	err := r.db.Where("is_active = ?", true).Order("is_featured DESC, name ASC").Find(&candidates).Error
	return candidates, err
}

func (r *candidateRepository) GetRecent(limit int) ([]models.Candidate, error) {
	var candidates []models.Candidate
	err := r.db.Order("created_at DESC").Limit(limit).Find(&candidates).Error
	return candidates, err
}

func (r *candidateRepository) Search(term string) ([]models.Candidate, error) {
	var candidates []models.Candidate
	pattern := "%" + term + "%"
	err := r.db.
		Where("name ILIKE ? OR party ILIKE ? OR bio ILIKE ?", pattern, pattern, pattern).
		Where("is_active = ?", true).
		Find(&candidates).Error
	return candidates, err
}

func (r *candidateRepository) Update(candidate *models.Candidate) error {
	return r.db.Save(candidate).Error
}

func (r *candidateRepository) UpdateWorkAnalysis(id uint, analysis string) error {
	return r.db.Model(&models.Candidate{}).
		Where("id = ?", id).
		UpdateColumn("ai_work_analysis", analysis).Error
}

// IncrementViewCount bumps the counter atomically in SQL so concurrent
// requests never lose updates.
func (r *candidateRepository) IncrementViewCount(id uint) error {
	return r.db.Model(&models.Candidate{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
}

func (r *candidateRepository) IncrementSearchCount(id uint) error {
	return r.db.Model(&models.Candidate{}).
		Where("id = ?", id).
		UpdateColumn("search_count", gorm.Expr("search_count + ?", 1)).Error
}

func (r *candidateRepository) SlugExists(slugValue string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Candidate{}).Where("slug = ?", slugValue).Count(&count).Error
	return count > 0, err
}

func (r *candidateRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Candidate{}).Count(&count).Error
	return count, err
}

func (r *candidateRepository) TotalViews() (int64, error) {
	var total int64
	err := r.db.Model(&models.Candidate{}).
		Select("COALESCE(SUM(view_count), 0)").
		Scan(&total).Error
	return total, err
}

func (r *candidateRepository) Delete(id uint) error {
	result := r.db.Delete(&models.Candidate{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("candidate not found")
	}
	return nil
}

// manifestoRepository implements models.ManifestoRepository.
type manifestoRepository struct {
	db *gorm.DB
}

func NewManifestoRepository(db *gorm.DB) models.ManifestoRepository {
	return &manifestoRepository{db: db}
}

func (r *manifestoRepository) Create(manifesto *models.Manifesto) error {
	return r.db.Create(manifesto).Error
}

func (r *manifestoRepository) GetByID(id uint) (*models.Manifesto, error) {
	var manifesto models.Manifesto
	err := r.db.First(&manifesto, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("manifesto not found")
		}
		return nil, err
	}
	return &manifesto, nil
}

func (r *manifestoRepository) GetByCandidate(candidateID uint) ([]models.Manifesto, error) {
	var manifestos []models.Manifesto
	err := r.db.Where("candidate_id = ?", candidateID).Order("created_at DESC").Find(&manifestos).Error
	return manifestos, err
}

func (r *manifestoRepository) GetLatestForCandidate(candidateID uint) (*models.Manifesto, error) {
	var manifesto models.Manifesto
	err := r.db.Where("candidate_id = ?", candidateID).Order("created_at DESC").First(&manifesto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &manifesto, nil
}

func (r *manifestoRepository) Update(manifesto *models.Manifesto) error {
	return r.db.Save(manifesto).Error
}

func (r *manifestoRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Manifesto{}).Count(&count).Error
	return count, err
}

// queryLogRepository implements models.QueryLogRepository.
type queryLogRepository struct {
	db *gorm.DB
}

func NewQueryLogRepository(db *gorm.DB) models.QueryLogRepository {
	return &queryLogRepository{db: db}
}

func (r *queryLogRepository) Create(log *models.QueryLog) error {
	return r.db.Create(log).Error
}

func (r *queryLogRepository) GetRecent(limit int) ([]models.QueryLog, error) {
	var logs []models.QueryLog
	err := r.db.Order("created_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}

func (r *queryLogRepository) GetAllOrdered() ([]models.QueryLog, error) {
	var logs []models.QueryLog
	err := r.db.Order("created_at ASC").Find(&logs).Error
	return logs, err
}

func (r *queryLogRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.QueryLog{}).Count(&count).Error
	return count, err
}

// engagementRepository implements models.EngagementRepository.
type engagementRepository struct {
	db *gorm.DB
}

func NewEngagementRepository(db *gorm.DB) models.EngagementRepository {
	return &engagementRepository{db: db}
}

func (r *engagementRepository) Create(event *models.EngagementHistory) error {
	return r.db.Create(event).Error
}

func (r *engagementRepository) HasRecent(candidateID uint, since time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&models.EngagementHistory{}).
		Where("candidate_id = ? AND created_at >= ?", candidateID, since).
		Count(&count).Error
	return count > 0, err
}

func (r *engagementRepository) GetSince(candidateID uint, since time.Time) ([]models.EngagementHistory, error) {
	var events []models.EngagementHistory
	err := r.db.
		Where("candidate_id = ? AND created_at >= ?", candidateID, since).
		Order("created_at ASC").
		Find(&events).Error
	return events, err
}

// researchAnalysisRepository implements models.ResearchAnalysisRepository.
type researchAnalysisRepository struct {
	db *gorm.DB
}

func NewResearchAnalysisRepository(db *gorm.DB) models.ResearchAnalysisRepository {
	return &researchAnalysisRepository{db: db}
}

func (r *researchAnalysisRepository) Create(analysis *models.ResearchAnalysis) error {
	return r.db.Create(analysis).Error
}

func (r *researchAnalysisRepository) GetRecent(limit int) ([]models.ResearchAnalysis, error) {
	var analyses []models.ResearchAnalysis
	err := r.db.Order("created_at DESC").Limit(limit).Find(&analyses).Error
	return analyses, err
}

// RepositoryManager bundles all repositories behind one constructor.
type RepositoryManager struct {
	Candidate models.CandidateRepository
	Manifesto models.ManifestoRepository
	QueryLog  models.QueryLogRepository
	Engage    models.EngagementRepository
	Research  models.ResearchAnalysisRepository
}

func NewRepositoryManager(db *gorm.DB) *RepositoryManager {
	return &RepositoryManager{
		Candidate: NewCandidateRepository(db),
		Manifesto: NewManifestoRepository(db),
		QueryLog:  NewQueryLogRepository(db),
		Engage:    NewEngagementRepository(db),
		Research:  NewResearchAnalysisRepository(db),
	}
}
