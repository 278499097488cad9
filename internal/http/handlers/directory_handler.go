// Directory JSON API handlers: the read-only listings of users and
// departments. Both return an empty array, not an error, when the table is
// empty.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListUsers godoc
// @ID          listUsers
// @Summary     List all users
// @Tags        Directory
// @Produce     json
// @Success     200  {array}   domain.User
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /users [get]
func (h *Handlers) ListUsers(c *gin.Context) {
	ctx, cancel := h.reqCtx(c)
	defer cancel()

	rows, err := h.dir.Users(ctx)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, rows)
}

// ListDepartments godoc
// @ID          listDepartments
// @Summary     List all departments
// @Tags        Directory
// @Produce     json
// @Success     200  {array}   domain.Department
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /dept [get]
func (h *Handlers) ListDepartments(c *gin.Context) {
	ctx, cancel := h.reqCtx(c)
	defer cancel()

	rows, err := h.dir.Departments(ctx)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, rows)
}
