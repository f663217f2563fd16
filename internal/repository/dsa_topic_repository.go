package repository

import (
	"errors"

	"prepos_backend/internal/model"
	"prepos_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DsaTopicRepository struct {
	DB *gorm.DB
}

func NewDsaTopicRepository(db *gorm.DB) *DsaTopicRepository {
	return &DsaTopicRepository{DB: db}
}

// ListOrSeed 首次访问写入默认清单。(user_id, name) 唯一索引加 ON CONFLICT DO NOTHING，
// 并发的首次访问也只会留下一份清单
func (r *DsaTopicRepository) ListOrSeed(userID string) ([]model.DsaTopic, error) {
	var topics []model.DsaTopic
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.DsaTopic{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			seed := make([]model.DsaTopic, len(model.DefaultDsaTopics))
			for i, t := range model.DefaultDsaTopics {
				seed[i] = model.DsaTopic{
					UserID:     userID,
					Name:       t.Name,
					Category:   t.Category,
					Difficulty: t.Difficulty,
				}
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
				return err
			}
		}
		return tx.Where("user_id = ?", userID).Order("name ASC").Find(&topics).Error
	})
	return topics, err
}

// Toggle 只能修改自己的清单项
func (r *DsaTopicRepository) Toggle(userID, topicID string, completed bool) (*model.DsaTopic, error) {
	var topic model.DsaTopic
	err := r.DB.Where("id = ? AND user_id = ?", topicID, userID).First(&topic).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrDsaTopicNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.DB.Model(&topic).Update("completed", completed).Error; err != nil {
		return nil, err
	}
	topic.Completed = completed
	return &topic, nil
}
