// pkg/database/competitor.go
package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/movegoo/panoramai-sub001/pkg/model"
)

type CompetitorDB struct {
	db *gorm.DB
}

func (p *Postgres) Competitor() *CompetitorDB {
	return &CompetitorDB{db: p.db}
}

func (c *CompetitorDB) Save(competitor *model.Competitor) error {
	return c.db.Save(competitor).Error
}

func (c *CompetitorDB) GetByID(competitorID string) (*model.Competitor, error) {
	var competitor model.Competitor
	err := c.db.First(&competitor, "id = ?", competitorID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("竞品不存在")
		}
		return nil, fmt.Errorf("获取竞品信息失败: %w", err)
	}
	return &competitor, nil
}

// ActiveCompetitors 实现 engine.CompetitorSource，
// advertiserID 非空时按租户过滤
func (c *CompetitorDB) ActiveCompetitors(advertiserID string) ([]*model.Competitor, error) {
	var competitors []*model.Competitor
	query := c.db.Where("is_active = ?", true)
	if advertiserID != "" {
		query = query.Where("advertiser_id = ?", advertiserID)
	}

	err := query.Order("created_at ASC").Find(&competitors).Error
	if err != nil {
		return nil, fmt.Errorf("查询竞品列表失败: %w", err)
	}
	return competitors, nil
}
