package database

import "prepos_backend/internal/model"

func weight(v float64) *float64 { return &v }

func topic(name string, w float64, difficulty string) model.Topic {
	return model.Topic{Name: name, Weightage: weight(w), Difficulty: difficulty}
}

// DefaultCatalog 首次启动写入的考试目录，更多考试通过 scripts/import_catalog 导入
func DefaultCatalog() []model.Exam {
	return []model.Exam{
		{
			Name:           "GATE Computer Science",
			Category:       "Engineering",
			DurationMonths: 10,
			Subjects: []model.Subject{
				{Name: "Algorithms", Difficulty: "Hard", Topics: []model.Topic{
					topic("Asymptotic Analysis", 1, "Easy"),
					topic("Divide and Conquer", 2, "Medium"),
					topic("Dynamic Programming", 3, "Hard"),
					topic("Graph Algorithms", 3, "Hard"),
				}},
				{Name: "DBMS", Difficulty: "Medium", Topics: []model.Topic{
					topic("ER Model", 1, "Easy"),
					topic("Normalization", 2, "Medium"),
					topic("SQL and Relational Algebra", 2, "Medium"),
					topic("Transactions and Concurrency", 2, "Hard"),
				}},
				{Name: "Operating Systems", Difficulty: "Medium", Topics: []model.Topic{
					topic("Processes and Threads", 2, "Medium"),
					topic("CPU Scheduling", 2, "Medium"),
					topic("Memory Management", 3, "Hard"),
					topic("File Systems", 1, "Easy"),
				}},
				{Name: "Computer Networks", Difficulty: "Medium", Topics: []model.Topic{
					topic("IP Addressing and Subnetting", 2, "Medium"),
					topic("TCP and Congestion Control", 2, "Hard"),
					topic("Application Layer Protocols", 1, "Easy"),
				}},
			},
		},
		{
			Name:           "Campus Core CS",
			Category:       "Placement",
			DurationMonths: 3,
			Subjects: []model.Subject{
				{Name: "Object Oriented Programming", Difficulty: "Easy", Topics: []model.Topic{
					topic("Classes and Objects", 1, "Easy"),
					topic("Inheritance and Polymorphism", 2, "Medium"),
					topic("SOLID Principles", 2, "Medium"),
				}},
				{Name: "DBMS", Difficulty: "Medium", Topics: []model.Topic{
					topic("Indexing", 2, "Medium"),
					topic("Transactions and Isolation", 2, "Hard"),
				}},
			},
		},
	}
}
