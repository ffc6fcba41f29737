package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/safi/checktick/internal/service"
)

type Server struct {
	mx              *chi.Mux
	userService     service.UserServiceI
	sessionService  service.SessionServiceI
	tasksService    service.TasksServiceI
	statsService    service.StatsServiceI
	pomodoroService service.PomodoroServiceI
	notesService    service.NotesServiceI
}

type ServicesList struct {
	UserService     service.UserServiceI
	SessionService  service.SessionServiceI
	TasksService    service.TasksServiceI
	StatsService    service.StatsServiceI
	PomodoroService service.PomodoroServiceI
	NotesService    service.NotesServiceI
}

func New(servicesOptions *ServicesList) *Server {
	return &Server{
		mx:              chi.NewMux(),
		userService:     servicesOptions.UserService,
		sessionService:  servicesOptions.SessionService,
		tasksService:    servicesOptions.TasksService,
		statsService:    servicesOptions.StatsService,
		pomodoroService: servicesOptions.PomodoroService,
		notesService:    servicesOptions.NotesService,
	}
}

func (s *Server) routes() {
	s.mx.Use(s.RequestIDMiddleware, s.SettingUpLoggerMiddleware)
	s.mx.Route("/api", func(r chi.Router) {
		r.Get("/health", s.Health)
		r.Post("/auth/register", s.Register)
		r.Post("/auth/login", s.Login)
		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware, s.LoggerExtensionMiddleware)
			r.Get("/auth/me", s.Me)
			r.Post("/auth/logout", s.Logout)
			r.Post("/auth/change-password", s.ChangePassword)
			r.Get("/tasks", s.GetTasks)
			r.Post("/tasks", s.CreateTask)
			r.Put("/tasks/reorder", s.ReorderTasks)
			r.Put("/tasks/{id}", s.UpdateTask)
			r.Delete("/tasks/{id}", s.DeleteTask)
			r.Get("/stats", s.GetStats)
			r.Post("/pomodoro/start", s.StartPomodoro)
			r.Post("/pomodoro/{id}/complete", s.CompletePomodoro)
			r.Get("/notes", s.GetNotes)
			r.Post("/notes", s.CreateNote)
			r.Get("/notes/edges", s.GetNoteEdges)
			r.Post("/notes/edges", s.CreateNoteEdge)
			r.Delete("/notes/edges/{id}", s.DeleteNoteEdge)
			r.Put("/notes/{id}", s.UpdateNote)
			r.Delete("/notes/{id}", s.DeleteNote)
		})
	})
}

func (s *Server) Run(addr string) error {
	s.routes()
	return http.ListenAndServe(addr, s.mx)
}
