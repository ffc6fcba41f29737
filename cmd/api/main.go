// @title Checktick API
// @description Personal productivity backend: tasks, stats, pomodoro, sticky notes
// @BasePath /api
// @schemes http
package main

import (
	"log"

	"github.com/safi/checktick/internal/api"
	"github.com/safi/checktick/internal/repository"
	"github.com/safi/checktick/internal/service"
	"github.com/safi/checktick/pkg/cleanup"
	"github.com/safi/checktick/pkg/config"
)

func init() {
	service.InitValidator()
}

func main() {
	defer cleanup.CleanUp()
	cfg := config.New()
	dbCfg := repository.PGCfg{
		Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.GetString("POSTGRES_USER"),
		Password: cfg.GetString("POSTGRES_PASSWORD"),
		DB:       cfg.GetString("POSTGRES_DB"),
	}
	usersRepo := repository.NewUsersRepo(&dbCfg)
	sessionsRepo := repository.NewSessionsRepo(&dbCfg)
	tasksRepo := repository.NewTasksRepo(&dbCfg)
	activityRepo := repository.NewActivityLogRepo(&dbCfg)
	pomodoroRepo := repository.NewPomodoroRepo(&dbCfg)
	notesRepo := repository.NewNotesRepo(&dbCfg)
	serv := api.New(&api.ServicesList{
		UserService:     service.NewUserService(usersRepo),
		SessionService:  service.NewSessionService(sessionsRepo, usersRepo),
		TasksService:    service.NewTasksService(tasksRepo, activityRepo),
		StatsService:    service.NewStatsService(tasksRepo, activityRepo, pomodoroRepo),
		PomodoroService: service.NewPomodoroService(pomodoroRepo),
		NotesService:    service.NewNotesService(notesRepo),
	})
	err := serv.Run(cfg.GetStringOr("API_ADDRESS", ":8000"))
	if err != nil {
		log.Println("Server error: " + err.Error())
	}
}
