package model

// Exam 只读考试目录：Exam -> Subject -> Topic
type Exam struct {
	UUIDBase
	Name           string    `gorm:"size:120;not null;uniqueIndex" json:"name"`
	Category       string    `gorm:"size:60" json:"category"`
	DurationMonths int       `json:"durationMonths"`
	Subjects       []Subject `gorm:"foreignKey:ExamID;constraint:OnDelete:CASCADE" json:"subjects,omitempty"`
}

func (Exam) TableName() string {
	return "exams"
}

type Subject struct {
	UUIDBase
	ExamID     string  `gorm:"type:varchar(36);not null;index" json:"-"`
	Name       string  `gorm:"size:120" json:"name"`
	Difficulty string  `gorm:"size:20" json:"difficulty"`
	Topics     []Topic `gorm:"foreignKey:SubjectID;constraint:OnDelete:CASCADE" json:"topics"`
}

func (Subject) TableName() string {
	return "exam_subjects"
}

type Topic struct {
	UUIDBase
	SubjectID  string   `gorm:"type:varchar(36);not null;index" json:"-"`
	Name       string   `gorm:"size:160" json:"name"`
	Weightage  *float64 `json:"weightage"`
	Difficulty string   `gorm:"size:20" json:"difficulty"`
}

func (Topic) TableName() string {
	return "exam_topics"
}

// 目录字段缺省值
const (
	UntitledTopic     = "Untitled Topic"
	UntitledSubject   = "Untitled Subject"
	DefaultDifficulty = "Medium"
	DefaultWeightage  = 1.0
)

// WeightageOrDefault 未设置权重的知识点按 1 计
func (t Topic) WeightageOrDefault() float64 {
	if t.Weightage == nil {
		return DefaultWeightage
	}
	return *t.Weightage
}

// Syllabus 考试及其按名称排序的科目、知识点
type Syllabus struct {
	Exam     Exam      `json:"exam"`
	Subjects []Subject `json:"subjects"`
}
