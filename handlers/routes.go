package handlers

import (
	"net/http"
	"time"

	"student-groups/persistence"

	"github.com/gorilla/mux"
)

// Router собирает все обработчики сервиса
type Router struct {
	Groups     *GroupHandler
	Students   *StudentHandler
	Membership *MembershipHandler
	Auth       *AuthHandler
	Backend    string
}

func NewRouter(store persistence.Store, authHandler *AuthHandler, backend string) *Router {
	return &Router{
		Groups:     NewGroupHandler(store),
		Students:   NewStudentHandler(store),
		Membership: NewMembershipHandler(store),
		Auth:       authHandler,
		Backend:    backend,
	}
}

// Register вешает маршруты на r. Если protect не nil, он оборачивает /api/v1.
func (rt *Router) Register(r *mux.Router, protect mux.MiddlewareFunc) {
	if rt.Auth != nil {
		r.HandleFunc("/api/auth/token", rt.Auth.Token).Methods("POST")
	}

	api := r.PathPrefix("/api/v1").Subrouter()
	if protect != nil {
		api.Use(protect)
	}

	// Группы. Статичные пути регистрируются раньше /groups/{group_id}
	api.HandleFunc("/groups", rt.Groups.GetGroups).Methods("GET")
	api.HandleFunc("/groups", rt.Groups.CreateGroup).Methods("POST")
	api.HandleFunc("/groups/assign-student", rt.Membership.AssignStudent).Methods("POST")
	api.HandleFunc("/groups/remove-student", rt.Membership.RemoveStudent).Methods("POST")
	api.HandleFunc("/groups/transfer-student", rt.Membership.TransferStudent).Methods("POST")
	api.HandleFunc("/groups/{group_id}", rt.Groups.GetGroup).Methods("GET")
	api.HandleFunc("/groups/{group_id}", rt.Groups.DeleteGroup).Methods("DELETE")
	api.HandleFunc("/groups/{group_id}/students", rt.Groups.GetGroupStudents).Methods("GET")

	// Студенты
	api.HandleFunc("/students", rt.Students.GetStudents).Methods("GET")
	api.HandleFunc("/students", rt.Students.CreateStudent).Methods("POST")
	api.HandleFunc("/students/{student_id}", rt.Students.GetStudent).Methods("GET")
	api.HandleFunc("/students/{student_id}", rt.Students.DeleteStudent).Methods("DELETE")

	r.HandleFunc("/", rootHandler).Methods("GET")
	r.HandleFunc("/health", rt.health).Methods("GET")
}

func (rt *Router) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"service":   "student-groups",
		"storage":   rt.Backend,
		"auth":      rt.Auth != nil,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	html := `
<!DOCTYPE html>
<html>
<head>
    <title>Student Groups API</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            margin: 0;
            padding: 0;
            background: #f4f6fb;
            display: flex;
            justify-content: center;
        }
        .container {
            background: white;
            padding: 2rem 3rem;
            margin-top: 3rem;
            border-radius: 12px;
            box-shadow: 0 6px 20px rgba(0,0,0,0.12);
            max-width: 680px;
        }
        code { background: #f1f3f4; padding: 0 4px; border-radius: 4px; }
    </style>
</head>
<body>
    <div class="container">
        <h1>🎓 Student Groups API</h1>
        <p>✅ Сервер работает</p>
        <ul>
            <li><code>GET/POST /api/v1/groups</code></li>
            <li><code>GET/DELETE /api/v1/groups/{group_id}</code></li>
            <li><code>GET /api/v1/groups/{group_id}/students</code></li>
            <li><code>POST /api/v1/groups/assign-student</code></li>
            <li><code>POST /api/v1/groups/remove-student</code></li>
            <li><code>POST /api/v1/groups/transfer-student</code></li>
            <li><code>GET/POST /api/v1/students</code></li>
            <li><code>GET/DELETE /api/v1/students/{student_id}</code></li>
            <li><code>POST /api/auth/token</code></li>
        </ul>
    </div>
</body>
</html>`
	w.Write([]byte(html))
}
