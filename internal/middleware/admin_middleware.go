package middleware

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
)

//
// --- Role-Based Middleware ---
//
// Designed to be USED *AFTER* AuthMiddleware: reads the member id from
// the context, queries the DB for the admin level, and enforces it.
//

// AdminMiddleware allows only members with admin_level >= 1 through.
func AdminMiddleware(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		memberID := MemberID(c)
		if memberID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Member ID not found in context (AuthMiddleware must run first)"})
			c.Abort()
			return
		}

		var adminLevel int
		err := db.QueryRow("SELECT admin_level FROM members WHERE id = ?", memberID).Scan(&adminLevel)
		if err != nil {
			if err == sql.ErrNoRows {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid member"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error checking admin level"})
			}
			c.Abort()
			return
		}

		if adminLevel < 1 {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}
