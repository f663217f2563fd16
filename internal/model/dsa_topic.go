package model

import "time"

type DsaDifficulty string

const (
	DsaEasy   DsaDifficulty = "Easy"
	DsaMedium DsaDifficulty = "Medium"
	DsaHard   DsaDifficulty = "Hard"
)

// Weight 薄弱项排序权重
func (d DsaDifficulty) Weight() int {
	switch d {
	case DsaHard:
		return 3
	case DsaMedium:
		return 2
	case DsaEasy:
		return 1
	}
	return 0
}

// DsaTopic 用户个人的 DSA 清单项，(user_id, name) 唯一
type DsaTopic struct {
	UUIDBase
	UserID     string        `gorm:"type:varchar(128);not null;uniqueIndex:idx_dsa_topics_user_name,priority:1" json:"userId"`
	Name       string        `gorm:"size:120;not null;uniqueIndex:idx_dsa_topics_user_name,priority:2" json:"name"`
	Category   string        `gorm:"size:60" json:"category"`
	Difficulty DsaDifficulty `gorm:"size:10" json:"difficulty"`
	Completed  bool          `gorm:"default:false" json:"completed"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

func (DsaTopic) TableName() string {
	return "dsa_topics"
}

// DefaultDsaTopics 首次访问时为用户写入的默认清单
var DefaultDsaTopics = []DsaTopic{
	{Name: "Arrays and Strings", Category: "Fundamentals", Difficulty: DsaEasy},
	{Name: "Hashing and Maps", Category: "Fundamentals", Difficulty: DsaEasy},
	{Name: "Linked List", Category: "Data Structures", Difficulty: DsaEasy},
	{Name: "Binary Search", Category: "Algorithms", Difficulty: DsaEasy},
	{Name: "Sliding Window", Category: "Algorithms", Difficulty: DsaMedium},
	{Name: "Two Pointers", Category: "Algorithms", Difficulty: DsaMedium},
	{Name: "Trees and BST", Category: "Data Structures", Difficulty: DsaMedium},
	{Name: "Heaps and Priority Queue", Category: "Data Structures", Difficulty: DsaMedium},
	{Name: "Dynamic Programming", Category: "Algorithms", Difficulty: DsaHard},
	{Name: "Graphs", Category: "Algorithms", Difficulty: DsaHard},
}
