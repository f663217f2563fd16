package repository

import (
	"sort"
	"sync"
	"time"

	"prepos_backend/internal/model"
	"prepos_backend/pkg/logger"
	"prepos_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// QueryPlan 按用户列出最近记录的方式
type QueryPlan int

const (
	// PlanOrdered 依赖 (user_id, created_at) 复合索引，在库内排序分页
	PlanOrdered QueryPlan = iota
	// PlanUnordered 索引缺失时按用户取全量，在内存中排序后截断
	PlanUnordered
)

func (p QueryPlan) String() string {
	if p == PlanUnordered {
		return "unordered"
	}
	return "ordered"
}

type recentIndex struct {
	model interface{}
	name  string
}

// recentIndexes 各集合“最近记录”查询依赖的复合索引
var recentIndexes = map[string]recentIndex{
	"study_sessions":       {&model.StudySession{}, "idx_study_sessions_user_created"},
	"mock_tests":           {&model.MockTestAttempt{}, "idx_mock_tests_user_created"},
	"mock_interviews":      {&model.MockInterview{}, "idx_mock_interviews_user_created"},
	"company_applications": {&model.CompanyApplication{}, "idx_company_apps_user_created"},
	"interview_sessions":   {&model.InterviewSession{}, "idx_interview_sessions_user_created"},
	"interview_questions":  {&model.InterviewQuestion{}, "idx_interview_questions_user_created"},
}

// QueryPlanner 启动时检查索引是否存在并选择查询方式，之后可由定时任务重新探测
type QueryPlanner struct {
	DB    *gorm.DB
	mu    sync.RWMutex
	plans map[string]QueryPlan
}

func NewQueryPlanner(db *gorm.DB) *QueryPlanner {
	p := &QueryPlanner{DB: db, plans: make(map[string]QueryPlan, len(recentIndexes))}
	p.Probe()
	return p
}

// Probe 重新检查全部集合的索引
func (p *QueryPlanner) Probe() {
	migrator := p.DB.Migrator()
	for collection, idx := range recentIndexes {
		plan := PlanOrdered
		if !migrator.HasIndex(idx.model, idx.name) {
			plan = PlanUnordered
		}
		p.set(collection, plan)
	}
}

// SetPlan 手动指定查询方式
func (p *QueryPlanner) SetPlan(collection string, plan QueryPlan) {
	p.set(collection, plan)
}

func (p *QueryPlanner) set(collection string, plan QueryPlan) {
	p.mu.Lock()
	previous, known := p.plans[collection]
	p.plans[collection] = plan
	p.mu.Unlock()

	gauge := 1.0
	if plan == PlanUnordered {
		gauge = 0
	}
	monitoring.QueryPlan.WithLabelValues(collection).Set(gauge)

	if !known || previous != plan {
		logger.Log.Info("Query plan selected",
			zap.String("collection", collection),
			zap.String("plan", plan.String()),
		)
	}
}

// Plan 未探测过的集合按有序查询处理
func (p *QueryPlanner) Plan(collection string) QueryPlan {
	if p == nil {
		return PlanOrdered
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.plans[collection]
}

// listRecent 按创建时间倒序返回用户最近 limit 条记录，两种查询方式结果一致
func listRecent[T any](db *gorm.DB, planner *QueryPlanner, collection, userID string, limit int, createdAt func(*T) time.Time) ([]T, error) {
	var rows []T
	query := db.Table(collection).Where("user_id = ?", userID)

	if planner.Plan(collection) == PlanOrdered {
		if err := query.Order("created_at DESC").Limit(limit).Find(&rows).Error; err != nil {
			return nil, err
		}
		return rows, nil
	}

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return createdAt(&rows[i]).After(createdAt(&rows[j]))
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}
