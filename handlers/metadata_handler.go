package handlers

import (
	"net/http"

	"github.com/NomadCrew/pett-server/types"
	"github.com/gin-gonic/gin"
)

type MetadataHandler struct {
	metadata types.Metadata
}

func NewMetadataHandler(metadata types.Metadata) *MetadataHandler {
	return &MetadataHandler{
		metadata: metadata,
	}
}

// GetMetadataHandler godoc
// @Summary Build metadata
// @Description Returns the version, description and source revision of the running build
// @Tags metadata
// @Produce json
// @Success 200 {object} types.Metadata
// @Router /metadata [get]
func (h *MetadataHandler) GetMetadataHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.metadata)
}
