package service

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"gitlab.com/dirk.krummacker/contact-book/internal/model"
	"gitlab.com/dirk.krummacker/contact-book/internal/storage"
)

// handler serves the REST API on top of the contact storage.
type handler struct {
	contacts *storage.Facade
	log      zerolog.Logger
}

// SetupHttpRouter initializes the REST API router and registers all endpoints. The storage must have
// been initialized; until then every endpoint answers with SERVICE UNAVAILABLE. If requestLogging is
// set then every request is logged at info level.
func SetupHttpRouter(contacts *storage.Facade, logger zerolog.Logger, requestLogging bool) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if requestLogging {
		router.Use(logRequests(logger))
	}
	h := &handler{contacts: contacts, log: logger}
	router.GET("/contacts", h.findContacts)
	router.POST("/contacts", h.createContact)
	router.PUT("/contacts/:id", h.updateContactByID)
	router.DELETE("/contacts/:id", h.deleteContactByID)
	return router
}

// logRequests writes one log line per request through the application logger.
func logRequests(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

// findContacts responds with the list of all contacts as JSON, most recently created first. An
// empty contact book is answered with an empty list.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts
func (h *handler) findContacts(c *gin.Context) {
	contacts, err := h.contacts.List(c.Request.Context())
	if err != nil {
		h.abortWithStorageError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, contacts)
}

// createContact inserts the contact specified in the request's JSON. It responds with the full
// contact data including the newly assigned id. Name and phone are required; company, email and
// avatar may be omitted and are then stored as empty strings.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts --request "POST" --include --header "Content-Type: application/json" --data '{"name": "王小明", "phone": "0912-345-678", "company": "測試科技"}'
func (h *handler) createContact(c *gin.Context) {
	var newContact model.Contact
	if err := c.ShouldBindJSON(&newContact); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}
	result, err := h.contacts.Create(c.Request.Context(), newContact)
	if err != nil {
		h.abortWithStorageError(c, err)
		return
	}
	newContact.Id = result.LastInsertId
	c.IndentedJSON(http.StatusCreated, newContact)
}

// updateContactByID replaces all values of the contact whose ID value matches the id parameter of
// the request URL with the values of the JSON, and responds with the new version of the contact.
// Values that are omitted are stored as empty strings, so name and phone are required.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts/56 --request "PUT" --include --header "Content-Type: application/json" --data '{"name": "李大華", "phone": "0987-654-321"}'
func (h *handler) updateContactByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var submitted model.Contact
	if err := c.ShouldBindJSON(&submitted); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}
	submitted.Id = id

	rowsAffected, err := h.contacts.Update(c.Request.Context(), submitted)
	if err != nil {
		h.abortWithStorageError(c, err)
		return
	}
	if rowsAffected == 0 {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "contact not found"})
		return
	}
	c.IndentedJSON(http.StatusOK, submitted)
}

// deleteContactByID deletes the contact whose ID value matches the id parameter of the request URL.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts/56 --request "DELETE"
func (h *handler) deleteContactByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	rowsAffected, err := h.contacts.Delete(c.Request.Context(), id)
	if err != nil {
		h.abortWithStorageError(c, err)
		return
	}
	if rowsAffected == 0 {
		c.IndentedJSON(http.StatusNotFound, gin.H{"message": "contact not found"})
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"message": "contact deleted"})
}

// parseID reads the id parameter of the request URL. Ids that are not numeric cannot exist, so the
// request is answered with NOT FOUND without asking the storage.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "invalid id parameter"})
		return 0, false
	}
	return id, true
}

// abortWithStorageError logs a storage failure and answers with a generic message.
func (h *handler) abortWithStorageError(c *gin.Context, err error) {
	if errors.Is(err, storage.ErrNotInitialized) {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"message": "storage not available"})
		return
	}
	h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("storage failure")
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
}
