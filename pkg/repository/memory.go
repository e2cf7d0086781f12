// pkg/repository/memory.go
package repository

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/movegoo/panoramai-sub001/pkg/engine"
	"github.com/movegoo/panoramai-sub001/pkg/model"
)

// MemoryStore 内存实现的竞品/指标/广告/信号存储，
// 实现 pkg/engine 的全部存储接口。引擎测试和本地联调用它，
// 线上走 pkg/database 的 Postgres 实现。
type MemoryStore struct {
	mutex sync.RWMutex

	competitors []*model.Competitor
	// 指标序列按 (competitorID, metricKey) 索引，时间倒序存放
	samples   map[string][]engine.Sample
	ads       []*model.Ad
	snapshots []*model.AdSnapshot
	signals   []*model.Signal
}

// NewMemoryStore 创建内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		samples: make(map[string][]engine.Sample),
	}
}

func sampleKey(competitorID, metric string) string {
	return competitorID + "/" + metric
}

// AddCompetitor 登记竞品
func (m *MemoryStore) AddCompetitor(c *model.Competitor) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	m.competitors = append(m.competitors, c)
}

// AddSamples 写入一条指标序列（时间倒序）
func (m *MemoryStore) AddSamples(competitorID, metric string, samples []engine.Sample) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.samples[sampleKey(competitorID, metric)] = samples
}

// AddAd 登记广告
func (m *MemoryStore) AddAd(ad *model.Ad) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if ad.ID == "" {
		ad.ID = uuid.New().String()
	}
	m.ads = append(m.ads, ad)
}

// ActiveCompetitors 实现 engine.CompetitorSource
func (m *MemoryStore) ActiveCompetitors(advertiserID string) ([]*model.Competitor, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var result []*model.Competitor
	for _, c := range m.competitors {
		if !c.IsActive {
			continue
		}
		if advertiserID != "" && c.AdvertiserID != advertiserID {
			continue
		}
		result = append(result, c)
	}
	return result, nil
}

func (m *MemoryStore) metricSamples(competitorID, metric string) ([]engine.Sample, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return m.samples[sampleKey(competitorID, metric)], nil
}

// InstagramFollowers 实现 engine.MetricSource
func (m *MemoryStore) InstagramFollowers(competitorID string) ([]engine.Sample, error) {
	return m.metricSamples(competitorID, "instagram_followers")
}

func (m *MemoryStore) InstagramEngagement(competitorID string) ([]engine.Sample, error) {
	return m.metricSamples(competitorID, "instagram_engagement")
}

func (m *MemoryStore) TikTokFollowers(competitorID string) ([]engine.Sample, error) {
	return m.metricSamples(competitorID, "tiktok_followers")
}

func (m *MemoryStore) YouTubeSubscribers(competitorID string) ([]engine.Sample, error) {
	return m.metricSamples(competitorID, "youtube_subscribers")
}

func (m *MemoryStore) YouTubeEngagement(competitorID string) ([]engine.Sample, error) {
	return m.metricSamples(competitorID, "youtube_engagement")
}

func (m *MemoryStore) AppRatings(competitorID string, store model.Platform) ([]engine.Sample, error) {
	return m.metricSamples(competitorID, "rating_"+string(store))
}

// ActiveAds 实现 engine.AdStore
func (m *MemoryStore) ActiveAds() ([]*model.Ad, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var result []*model.Ad
	for _, ad := range m.ads {
		if ad.IsActive {
			result = append(result, ad)
		}
	}
	return result, nil
}

func (m *MemoryStore) AppendSnapshot(snapshot *model.AdSnapshot) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if snapshot.ID == "" {
		snapshot.ID = uuid.New().String()
	}
	m.snapshots = append(m.snapshots, snapshot)
	return nil
}

func (m *MemoryStore) ActiveAdCounts(competitorID string) ([]engine.Sample, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	counts := make(map[int64]*engine.Sample)
	for _, s := range m.snapshots {
		if s.CompetitorID != competitorID || !s.IsActive {
			continue
		}
		key := s.CapturedAt.UnixNano()
		if existing, ok := counts[key]; ok {
			existing.Value++
			continue
		}
		counts[key] = &engine.Sample{Value: 1, RecordedAt: s.CapturedAt}
	}

	result := make([]engine.Sample, 0, len(counts))
	for _, s := range counts {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].RecordedAt.After(result[j].RecordedAt)
	})
	return result, nil
}

// Snapshots 返回台账全部行（测试断言用）
func (m *MemoryStore) Snapshots() []*model.AdSnapshot {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return append([]*model.AdSnapshot(nil), m.snapshots...)
}

// Save 实现 engine.SignalStore
func (m *MemoryStore) Save(signal *model.Signal) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if signal.ID == "" {
		signal.ID = uuid.New().String()
	}
	m.signals = append(m.signals, signal)
	return nil
}

// Signals 返回已保存信号（测试断言用）
func (m *MemoryStore) Signals() []*model.Signal {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return append([]*model.Signal(nil), m.signals...)
}
