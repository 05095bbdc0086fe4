package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/campuslab/feedback-back/internal/config"
	"github.com/campuslab/feedback-back/internal/dao"
	"github.com/campuslab/feedback-back/internal/handlers"
	"github.com/campuslab/feedback-back/internal/models"
	"github.com/campuslab/feedback-back/internal/services"

	mux "github.com/gorilla/mux"
	"github.com/rs/cors"
	"golang.org/x/time/rate"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupLogging(logLevel string) {
	switch strings.ToLower(logLevel) {
	case "debug":
		slog.SetLogLoggerLevel(slog.LevelDebug)
	case "info":
		slog.SetLogLoggerLevel(slog.LevelInfo)
	case "warn":
		slog.SetLogLoggerLevel(slog.LevelWarn)
	case "error":
		slog.SetLogLoggerLevel(slog.LevelError)
	}
}

// initDatabase 初始化数据库连接
func initDatabase(cfg *config.Config) *gorm.DB {

	sqlCfg := cfg.Mysql
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		sqlCfg.Username, sqlCfg.Password, sqlCfg.Host, sqlCfg.Port, sqlCfg.DBName)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		PrepareStmt: true, // 开启预编译提升性能
		NowFunc: func() time.Time {
			return time.Now().UTC() // 写入用 UTC
		},
	})
	if err != nil {
		log.Fatal("Could not connect to the database", err)
	}

	// 启动建表，等价于原部署脚本的 CREATE TABLE IF NOT EXISTS
	if err := db.AutoMigrate(&models.Feedback{}); err != nil {
		log.Fatal("Could not migrate the feedback table", err)
	}

	// 获取底层*sql.DB对象并配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("Get underlying sql.DB failed", err)
	}

	// 关键连接池配置
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetMaxIdleConns(20)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	// 添加连接健康检查
	go func() {
		for {
			time.Sleep(1 * time.Minute)
			if err := sqlDB.Ping(); err != nil {
				log.Printf("Database connection health check failed: %v", err)
			}
		}
	}()

	return db
}

// setupRoutes 设置路由
func setupRoutes(service *services.FeedbackService) *mux.Router {
	r := mux.NewRouter()

	// 创建处理器
	h := handlers.NewSimpleHandler(service)

	// 设置中间件
	limiter := rate.NewLimiter(rate.Limit(100), 200)
	midWares := []handlers.Middleware{
		handlers.AccessLog,
		handlers.RateLimit(limiter),
	}

	r.HandleFunc("/api/feedback", handlers.WithMidWare(h.ListFeedbacks, midWares...)).Methods("GET")
	r.HandleFunc("/api/feedback", handlers.WithMidWare(h.AddFeedback, midWares...)).Methods("POST")
	r.HandleFunc("/api/feedback/{id:[0-9]+}", handlers.WithMidWare(h.DeleteFeedback, midWares...)).Methods("DELETE")
	r.HandleFunc("/api/dashboard", handlers.WithMidWare(h.Dashboard, midWares...)).Methods("GET")

	r.NotFoundHandler = http.HandlerFunc(handlers.NotFound)
	return r
}

// startServer 启动HTTP服务器
func startServer(handler http.Handler, cfg *config.Config) {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%v", cfg.ServerPort),
		Handler: handler,
	}

	slog.Info("Starting HTTP server: " + server.Addr + "...")

	err := server.ListenAndServe()
	if err != nil {
		slog.Error("Failed to start HTTP server: " + err.Error())
	}
}

func main() {

	cfg := config.GetConfig()

	// 设置日志级别
	setupLogging(cfg.Loglevel)

	// 初始化数据库连接
	db := initDatabase(cfg)

	// 组装数据访问层与业务服务
	repo := dao.NewMysqlRepository(db)
	service := services.NewFeedbackService(repo)

	// 设置路由
	router := setupRoutes(service)

	// 浏览器前端跨域访问
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE"},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(router)

	// 启动HTTP服务器
	startServer(corsHandler, cfg)
}
