// 导入考试目录脚本
//
// 读取 YAML 格式的考试目录并写入数据库，同名考试已存在时跳过。
// 写入后清除 Redis 中的目录缓存。
//
// 用法: go run scripts/import_catalog.go -file configs/catalog.yaml

package main

import (
	"context"
	"flag"
	"log"
	"os"

	"prepos_backend/internal/config"
	"prepos_backend/internal/model"
	"prepos_backend/internal/repository"
	"prepos_backend/pkg/database"
	"prepos_backend/pkg/logger"

	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Exams []struct {
		Name           string `yaml:"name"`
		Category       string `yaml:"category"`
		DurationMonths int    `yaml:"duration_months"`
		Subjects       []struct {
			Name       string `yaml:"name"`
			Difficulty string `yaml:"difficulty"`
			Topics     []struct {
				Name       string   `yaml:"name"`
				Weightage  *float64 `yaml:"weightage"`
				Difficulty string   `yaml:"difficulty"`
			} `yaml:"topics"`
		} `yaml:"subjects"`
	} `yaml:"exams"`
}

func main() {
	configDir := flag.String("config", "configs", "配置文件目录")
	file := flag.String("file", "configs/catalog.yaml", "考试目录文件")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}
	logger.InitLogger(cfg)

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("无法读取目录文件: %v", err)
	}
	var catalog catalogFile
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		log.Fatalf("解析目录文件失败: %v", err)
	}

	db, err := database.InitDB(&cfg.Database, true)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	for _, e := range catalog.Exams {
		exam := model.Exam{Name: e.Name, Category: e.Category, DurationMonths: e.DurationMonths}
		for _, s := range e.Subjects {
			subject := model.Subject{Name: s.Name, Difficulty: s.Difficulty}
			for _, t := range s.Topics {
				subject.Topics = append(subject.Topics, model.Topic{Name: t.Name, Weightage: t.Weightage, Difficulty: t.Difficulty})
			}
			exam.Subjects = append(exam.Subjects, subject)
		}
		if err := database.UpsertExam(db, exam); err != nil {
			log.Fatalf("写入考试 %s 失败: %v", e.Name, err)
		}
		log.Printf("已导入: %s (%d 个科目)", e.Name, len(exam.Subjects))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Printf("Redis 不可用，跳过缓存清理: %v", err)
		return
	}
	cache := repository.NewCatalogCache(repository.NewCatalogRepository(db), rdb, 0)
	if err := cache.Invalidate(context.Background()); err != nil {
		log.Printf("清理目录缓存失败: %v", err)
	}
	log.Println("完成！")
}
