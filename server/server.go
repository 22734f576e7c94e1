package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"thermal/model"
)

type Server struct {
	addr     string
	upgrader websocket.Upgrader
}

func NewServer(addr string, upgrader websocket.Upgrader) *Server {
	return &Server{
		addr:     addr,
		upgrader: upgrader,
	}
}

// serveWs handles websocket requests from the peer.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithField("remote", r.RemoteAddr).Error(err)
		return
	}
	defer conn.Close()
	hub := NewHub(conn)
	defer hub.close()
	log.WithField("remote", r.RemoteAddr).Info("建立连接")

	go hub.handleRequest()
	go hub.handleResponse()
	for {
		var msg model.Msg
		if err = conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithField("remote", r.RemoteAddr).Error("err: ", err)
			}
			break
		}
		hub.msg <- msg
	}
	log.WithField("remote", r.RemoteAddr).Info("连接断开")
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWs)
	return mux
}

func (s *Server) Serve() error {
	log.WithField("addr", s.addr).Info("start to serve")
	return http.ListenAndServe(s.addr, s.Handler())
}
