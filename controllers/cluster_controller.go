package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yaseeradam/smartlink-backend/apperrors"
	"github.com/yaseeradam/smartlink-backend/middleware"
	"github.com/yaseeradam/smartlink-backend/repository"
	"github.com/yaseeradam/smartlink-backend/services"
)

type ClusterController struct {
	clusters *services.ClusterService
}

func NewClusterController(clusters *services.ClusterService) *ClusterController {
	return &ClusterController{clusters: clusters}
}

// Create registers a new cluster led by the caller. Riders only.
func (cc *ClusterController) Create(c *gin.Context) {
	var req services.CreateClusterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	cluster, err := cc.clusters.CreateCluster(c.Request.Context(), c.GetString(middleware.ContextUserID), &req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"cluster": cluster})
}

// List returns active clusters, optionally filtered by service area.
func (cc *ClusterController) List(c *gin.Context) {
	filter := repository.ClusterFilter{
		ServiceArea: c.Query("area"),
		Search:      c.Query("search"),
		Page:        queryInt(c, "page", 1),
		Limit:       queryInt(c, "limit", 20),
	}

	list, err := cc.clusters.ListClusters(c.Request.Context(), filter)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (cc *ClusterController) Get(c *gin.Context) {
	cluster, err := cc.clusters.GetCluster(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cluster": cluster})
}

func (cc *ClusterController) Update(c *gin.Context) {
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	cluster, err := cc.clusters.UpdateCluster(c.Request.Context(), c.Param("id"), c.GetString(middleware.ContextUserID), updates)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cluster": cluster})
}

type addMemberRequest struct {
	RiderID string `json:"riderId" binding:"required"`
}

// AddMember adds a rider to the cluster. Leader only.
func (cc *ClusterController) AddMember(c *gin.Context) {
	var req addMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	cluster, err := cc.clusters.AddMember(c.Request.Context(), c.Param("id"), c.GetString(middleware.ContextUserID), req.RiderID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cluster": cluster})
}

// RemoveMember drops a rider from the cluster. Leader only.
func (cc *ClusterController) RemoveMember(c *gin.Context) {
	cluster, err := cc.clusters.RemoveMember(c.Request.Context(), c.Param("id"), c.GetString(middleware.ContextUserID), c.Param("riderId"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cluster": cluster})
}

type assignOrderRequest struct {
	OrderID string `json:"orderId" binding:"required"`
	RiderID string `json:"riderId"`
}

// AssignOrder dispatches an order to the cluster. The seller who owns the
// order calls this; with no rider given the leader takes it.
func (cc *ClusterController) AssignOrder(c *gin.Context) {
	var req assignOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	order, cluster, err := cc.clusters.AssignOrderToCluster(c.Request.Context(), c.Param("id"), c.GetString(middleware.ContextUserID), req.OrderID, req.RiderID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order, "cluster": cluster})
}

// Stats returns the cluster's read-time delivery aggregate.
func (cc *ClusterController) Stats(c *gin.Context) {
	stats, err := cc.clusters.GetClusterStats(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
