// pkg/database/metric.go
package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/movegoo/panoramai-sub001/pkg/engine"
	"github.com/movegoo/panoramai-sub001/pkg/model"
)

// MetricDB 各渠道指标序列读取，实现 engine.MetricSource。
// 指标行由外部采集任务写入，这里只读。
type MetricDB struct {
	db *gorm.DB
}

func (p *Postgres) Metric() *MetricDB {
	return &MetricDB{db: p.db}
}

// 序列读取统一限制条数：选择器只需要 latest 加一条超过最小间隔的
// previous，近期采样之外的历史用不到
const sampleLimit = 50

func (m *MetricDB) instagram(competitorID string) ([]*model.InstagramMetric, error) {
	var rows []*model.InstagramMetric
	err := m.db.Where("competitor_id = ?", competitorID).
		Order("recorded_at DESC").
		Limit(sampleLimit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("查询Instagram指标失败: %w", err)
	}
	return rows, nil
}

func (m *MetricDB) InstagramFollowers(competitorID string) ([]engine.Sample, error) {
	rows, err := m.instagram(competitorID)
	if err != nil {
		return nil, err
	}
	samples := make([]engine.Sample, 0, len(rows))
	for _, r := range rows {
		samples = append(samples, engine.Sample{Value: r.Followers, RecordedAt: r.RecordedAt})
	}
	return samples, nil
}

func (m *MetricDB) InstagramEngagement(competitorID string) ([]engine.Sample, error) {
	rows, err := m.instagram(competitorID)
	if err != nil {
		return nil, err
	}
	samples := make([]engine.Sample, 0, len(rows))
	for _, r := range rows {
		samples = append(samples, engine.Sample{Value: r.EngagementRate, RecordedAt: r.RecordedAt})
	}
	return samples, nil
}

func (m *MetricDB) TikTokFollowers(competitorID string) ([]engine.Sample, error) {
	var rows []*model.TikTokMetric
	err := m.db.Where("competitor_id = ?", competitorID).
		Order("recorded_at DESC").
		Limit(sampleLimit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("查询TikTok指标失败: %w", err)
	}
	samples := make([]engine.Sample, 0, len(rows))
	for _, r := range rows {
		samples = append(samples, engine.Sample{Value: r.Followers, RecordedAt: r.RecordedAt})
	}
	return samples, nil
}

func (m *MetricDB) youtube(competitorID string) ([]*model.YouTubeMetric, error) {
	var rows []*model.YouTubeMetric
	err := m.db.Where("competitor_id = ?", competitorID).
		Order("recorded_at DESC").
		Limit(sampleLimit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("查询YouTube指标失败: %w", err)
	}
	return rows, nil
}

func (m *MetricDB) YouTubeSubscribers(competitorID string) ([]engine.Sample, error) {
	rows, err := m.youtube(competitorID)
	if err != nil {
		return nil, err
	}
	samples := make([]engine.Sample, 0, len(rows))
	for _, r := range rows {
		samples = append(samples, engine.Sample{Value: r.Subscribers, RecordedAt: r.RecordedAt})
	}
	return samples, nil
}

func (m *MetricDB) YouTubeEngagement(competitorID string) ([]engine.Sample, error) {
	rows, err := m.youtube(competitorID)
	if err != nil {
		return nil, err
	}
	samples := make([]engine.Sample, 0, len(rows))
	for _, r := range rows {
		samples = append(samples, engine.Sample{Value: r.EngagementRate, RecordedAt: r.RecordedAt})
	}
	return samples, nil
}

func (m *MetricDB) AppRatings(competitorID string, store model.Platform) ([]engine.Sample, error) {
	var rows []*model.AppRatingMetric
	err := m.db.Where("competitor_id = ? AND store = ?", competitorID, store).
		Order("recorded_at DESC").
		Limit(sampleLimit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("查询应用评分失败: %w", err)
	}
	samples := make([]engine.Sample, 0, len(rows))
	for _, r := range rows {
		samples = append(samples, engine.Sample{Value: r.Rating, RecordedAt: r.RecordedAt})
	}
	return samples, nil
}
