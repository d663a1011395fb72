package branch

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Middleware cria um middleware para capturar os cabeçalhos branch-id e user-id.
// O branch-id delimita a filial corrente: todas as consultas de clientes, vendas
// e créditos são feitas no escopo dessa filial. O user-id identifica o ator
// responsável pela operação e é gravado nos registros criados.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		branchID := c.GetHeader("branch-id")
		if branchID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"code":    http.StatusBadRequest,
				"message": "cabeçalho branch-id não informado",
			})
			return
		}

		c.Set("branch_id", branchID)
		ctx := SetBranchID(c.Request.Context(), branchID)

		if actorID := c.GetHeader("user-id"); actorID != "" {
			c.Set("actor_id", actorID)
			ctx = SetActorID(ctx, actorID)
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
