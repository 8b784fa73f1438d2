package mockapi

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/Veraticus/ledgerdeck/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func resourceDefs() []resourceDef {
	return []resourceDef{
		{name: "budgets", path: "/budgets", required: []string{"department", "title", "amount_planned"}, defaults: record{"status": "Active"}},
		{name: "expenses", path: "/expenses", required: []string{"budget_id", "category", "amount", "description", "date"}, defaults: record{"recurrence": model.RecurrenceNone, "status": "Pending"}},
		{name: "income", path: "/income", required: []string{"source_name", "category", "amount", "date_received"}, defaults: record{"recurrence": model.RecurrenceNone}},
		{name: "payroll", path: "/payroll", required: []string{"employee_id", "month", "amount_paid", "payment_date"}, defaults: record{"status": model.PayrollPending}},
		{name: "goals", path: "/goals", required: []string{"name", "target_amount", "deadline"}, defaults: record{"current_amount": 0}, afterWrite: goalStatus},
		{name: "integrations", path: "/integrations", required: []string{"name", "type"}, defaults: record{"status": "active"}},
		{name: "roles", path: "/rbac/roles", required: []string{"name", "description"}, defaults: record{"permissions": []any{}}},
		{name: "tenants", path: "/tenants", required: []string{"name", "domain"}, defaults: record{"status": "active"}},
		{name: "invitations", path: "/invite", key: "email", required: []string{"email", "role"}, defaults: record{"status": model.InvitationPending}},
		{name: "channels", path: "/communications/channels", required: []string{"name"}, defaults: record{"is_private": false, "members": []any{}}, enveloped: true},
	}
}

func goalStatus(r record) {
	if toFloat(r["current_amount"]) >= toFloat(r["target_amount"]) && toFloat(r["target_amount"]) > 0 {
		r["status"] = model.GoalAchieved
		return
	}
	r["status"] = "In Progress"
}

func defaultWhiteLabel() model.WhiteLabelSettings {
	return model.DefaultWhiteLabelSettings()
}

func (s *Server) def(name string) resourceDef {
	c, _ := s.store.collection(name)
	return c.def
}

func (s *Server) listHandler(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		records := s.store.list(name)
		if s.def(name).enveloped {
			c.JSON(http.StatusOK, gin.H{"data": records})
			return
		}
		c.JSON(http.StatusOK, records)
	}
}

func (s *Server) createHandler(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in record
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		created, err := s.store.create(name, in, s.today())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func (s *Server) updateHandler(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch record
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		updated, ok := s.store.update(name, c.Param("id"), patch)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func (s *Server) deleteHandler(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.store.remove(name, c.Param("id")) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func (s *Server) downloadCollection(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		records := s.store.list(name)
		var b strings.Builder
		if len(records) > 0 {
			keys := sortedKeys(records[0])
			b.WriteString(strings.Join(keys, ","))
			for _, r := range records {
				cells := make([]string, len(keys))
				for i, k := range keys {
					cells[i] = keyString(r[k])
				}
				b.WriteString("\n")
				b.WriteString(strings.Join(cells, ","))
			}
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", name))
		c.Data(http.StatusOK, "text/csv", []byte(b.String()))
	}
}

func (s *Server) downloadRecord(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		r, ok := s.store.find(name, c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s-%s.json", name, c.Param("id")))
		c.JSON(http.StatusOK, r)
	}
}

func (s *Server) syncIntegration(c *gin.Context) {
	_, ok := s.store.update("integrations", c.Param("id"), record{
		"lastSync": s.now().UTC().Format("2006-01-02T15:04:05Z"),
		"status":   "active",
	})
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	synced := s.store.count("budgets", "expenses", "income", "payroll", "goals")
	c.JSON(http.StatusOK, gin.H{"syncedRecords": synced})
}

func (s *Server) createInvitation(c *gin.Context) {
	var in record
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if _, exists := s.store.find("invitations", keyString(in["email"])); exists {
		c.JSON(http.StatusConflict, gin.H{"error": "invitation already sent"})
		return
	}
	in["token"] = uuid.NewString()
	created, err := s.store.create("invitations", in, s.today())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) resendInvitation(c *gin.Context) {
	var req model.ResendRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}
	if _, ok := s.store.update("invitations", req.Email, record{"token": uuid.NewString()}); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Invitation resent"})
}

func (s *Server) assignRole(c *gin.Context) {
	var req model.RoleAssignment
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" || req.RoleID.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId and roleId are required"})
		return
	}
	if _, ok := s.store.find("roles", req.RoleID.String()); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "role not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Role assigned"})
}

func (s *Server) getWhiteLabel(c *gin.Context) {
	s.mu.Lock()
	settings := clone(s.whitelabel)
	s.mu.Unlock()
	c.JSON(http.StatusOK, settings)
}

func (s *Server) putWhiteLabel(c *gin.Context) {
	var in record
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	s.mu.Lock()
	s.whitelabel = in
	s.mu.Unlock()
	c.JSON(http.StatusOK, in)
}

func (s *Server) uploadLogo(c *gin.Context) {
	file, err := c.FormFile("logo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "logo file is required"})
		return
	}
	url := "/uploads/logos/" + filepath.Base(file.Filename)
	s.mu.Lock()
	s.whitelabel["logo"] = url
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"logoUrl": url})
}

func (s *Server) listFeed(c *gin.Context) {
	s.mu.Lock()
	feed := make([]record, len(s.feed))
	copy(feed, s.feed)
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"data": feed})
}

func (s *Server) listUsers(c *gin.Context) {
	s.mu.Lock()
	users := make([]gin.H, 0, len(s.users))
	for email, acct := range s.users {
		users = append(users, gin.H{"id": acct.id, "email": email, "role": acct.role})
	}
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"data": users})
}

func (s *Server) sendMessage(c *gin.Context) {
	var msg model.DirectMessage
	if err := c.ShouldBindJSON(&msg); err != nil || msg.Recipient == "" || msg.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipient and message are required"})
		return
	}
	s.mu.Lock()
	entry := record{
		"id":        len(s.feed) + 1,
		"type":      "direct",
		"sender":    s.user,
		"recipient": msg.Recipient,
		"subject":   msg.Subject,
		"message":   msg.Message,
		"status":    "sent",
		"timestamp": s.now().UTC().Format("2006-01-02T15:04:05Z"),
	}
	s.feed = append(s.feed, entry)
	s.mu.Unlock()
	c.JSON(http.StatusCreated, entry)
}

func (s *Server) joinChannel(c *gin.Context) {
	channel, ok := s.store.find("channels", c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	members, _ := channel["members"].([]any)
	for _, m := range members {
		if m == s.user {
			c.JSON(http.StatusOK, channel)
			return
		}
	}
	joined := append(append([]any(nil), members...), s.user)
	updated, _ := s.store.update("channels", c.Param("id"), record{"members": joined})
	c.JSON(http.StatusOK, updated)
}

func (s *Server) listChannelMessages(c *gin.Context) {
	if _, ok := s.store.find("channels", c.Param("id")); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	s.mu.Lock()
	msgs := append([]record{}, s.messages[c.Param("id")]...)
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"data": msgs})
}

func (s *Server) postChannelMessage(c *gin.Context) {
	if _, ok := s.store.find("channels", c.Param("id")); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	var post model.ChannelPost
	if err := c.ShouldBindJSON(&post); err != nil || strings.TrimSpace(post.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}
	id := c.Param("id")
	s.mu.Lock()
	msg := record{
		"id":         len(s.messages[id]) + 1,
		"channel_id": id,
		"sender":     s.user,
		"message":    post.Message,
		"timestamp":  s.now().UTC().Format("2006-01-02T15:04:05Z"),
	}
	s.messages[id] = append(s.messages[id], msg)
	s.mu.Unlock()
	c.JSON(http.StatusCreated, msg)
}

const badCredentials = "Invalid email or password"

func (s *Server) signIn(c *gin.Context) {
	var creds model.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}
	s.mu.Lock()
	acct, ok := s.users[creds.Email]
	s.mu.Unlock()
	if !ok || acct.password != creds.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"error": badCredentials})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": gin.H{"id": acct.id, "email": creds.Email}, "role": acct.role})
}

func (s *Server) signUp(c *gin.Context) {
	var creds model.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil || creds.Email == "" || creds.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}
	s.mu.Lock()
	if _, exists := s.users[creds.Email]; exists {
		s.mu.Unlock()
		c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
		return
	}
	acct := account{password: creds.Password, id: len(s.users) + 1}
	s.users[creds.Email] = acct
	s.mu.Unlock()
	c.JSON(http.StatusCreated, gin.H{"user": gin.H{"id": acct.id, "email": creds.Email}})
}
