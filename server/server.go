package main

import (
	"encoding/json"
	"log"
	"net"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"

	"github.com/gorilla/websocket"
)

const recentRunsLimit = 20

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true // Non-browser clients don't send Origin
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return u.Host == r.Host
	},
}

func extractIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("http: encode error: %v", err)
	}
}

// SetupRoutes configures HTTP routes. An empty clientDir serves no static files.
func SetupRoutes(hub *Hub, clientDir string) *http.ServeMux {
	mux := http.NewServeMux()

	if clientDir != "" {
		// Serve static files with no-cache so browsers always revalidate
		fs := http.FileServer(http.Dir(clientDir))
		mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "no-cache")
			if r.URL.Path == "/" {
				http.ServeFile(w, r, filepath.Join(clientDir, "index.html"))
				return
			}
			fs.ServeHTTP(w, r)
		}))
	}

	// WebSocket endpoint
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		ip := extractIP(r)
		if !hub.CanAccept(ip) {
			http.Error(w, "too many connections", http.StatusServiceUnavailable)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("upgrade error: %v", err)
			return
		}

		hub.TrackConnect(ip)

		client := NewClient(hub, conn, ip)
		hub.register <- client

		go client.WritePump()
		go client.ReadPump()
	})

	// Finished run log
	mux.HandleFunc("/api/runs", func(w http.ResponseWriter, r *http.Request) {
		if hub.db == nil {
			http.Error(w, "run log disabled", http.StatusNotFound)
			return
		}
		limit := recentRunsLimit
		if s := r.URL.Query().Get("limit"); s != "" {
			if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
				limit = n
			}
		}
		runs, err := hub.db.RecentRuns(limit)
		if err != nil {
			log.Printf("api runs: %v", err)
			http.Error(w, "database error", http.StatusInternalServerError)
			return
		}
		summary, err := hub.db.Summary()
		if err != nil {
			log.Printf("api runs summary: %v", err)
			http.Error(w, "database error", http.StatusInternalServerError)
			return
		}
		if runs == nil {
			runs = []RunRow{}
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"summary": summary,
			"runs":    runs,
		})
	})

	// Active runs
	mux.HandleFunc("/api/active", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, hub.runs.ListRuns())
	})

	// Level queue
	mux.HandleFunc("/api/levels", func(w http.ResponseWriter, r *http.Request) {
		levels := hub.runs.levels.Levels()
		out := make([]LevelMsg, len(levels))
		for i, lv := range levels {
			out[i] = LevelMsg{Level: i, Name: lv.Name}
		}
		writeJSON(w, http.StatusOK, out)
	})

	// Controller pairing QR: /qr?rid=<run id>
	mux.HandleFunc("/qr", func(w http.ResponseWriter, r *http.Request) {
		if hub.pairing == nil {
			http.Error(w, "pairing disabled", http.StatusNotFound)
			return
		}
		rid := r.URL.Query().Get("rid")
		if hub.runs.GetRun(rid) == nil {
			http.Error(w, "run not found", http.StatusNotFound)
			return
		}
		tok, err := hub.pairing.IssueToken(rid)
		if err != nil {
			log.Printf("qr: issue token: %v", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		link := scheme + "://" + r.Host + "/?ctrl=" + url.QueryEscape(tok)
		png, err := PairingQR(link)
		if err != nil {
			log.Printf("qr: %v", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-store")
		w.Write(png)
	})

	return mux
}
