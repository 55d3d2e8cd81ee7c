package web

import (
	"net/http"
	"os"
	"sync"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/mogaika/gbe_scene_converter/converter"
	"github.com/mogaika/gbe_scene_converter/scene"
	"github.com/mogaika/gbe_scene_converter/status"
)

// Server exposes one live scene over http.
// All handlers hold the lock while they touch the scene.
type Server struct {
	lock   sync.Mutex
	scene  *scene.Scene
	conv   *converter.Converter
	status *status.Logger

	upgrader websocket.Upgrader
}

func NewServer(s *scene.Scene, conv *converter.Converter, log *status.Logger) *Server {
	return &Server{
		scene:  s,
		conv:   conv,
		status: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func (srv *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/json/scene", srv.HandlerAjaxScene).Methods("GET")
	r.HandleFunc("/json/scene/nodes", srv.HandlerAjaxSceneNodes).Methods("GET")
	r.HandleFunc("/json/status", srv.HandlerAjaxStatus).Methods("GET")
	r.HandleFunc("/dump/scene", srv.HandlerDumpScene).Methods("GET")
	r.HandleFunc("/export/scene", srv.HandlerExportScene).Methods("GET")
	r.HandleFunc("/upload/scene", srv.HandlerUploadScene).Methods("POST")
	r.HandleFunc("/ws/status", srv.HandlerWsStatus)
	return r
}

func (srv *Server) Handler() http.Handler {
	h := handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(srv.Router())
	return handlers.LoggingHandler(os.Stdout, h)
}

func (srv *Server) Start(addr string) error {
	srv.status.Infof("[web] Starting server %v", addr)
	return http.ListenAndServe(addr, srv.Handler())
}
