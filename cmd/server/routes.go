package main

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/nidoham/Social-v2/internal/domain"
	"github.com/nidoham/Social-v2/internal/metrics"
	"github.com/nidoham/Social-v2/internal/social"
)

// registerRoutes wires the HTTP surface over the repository. All
// semantics live in internal/social; handlers only translate
// requests, responses and error classes.
func registerRoutes(router *gin.Engine, repo *social.Repository, log *zap.Logger) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	registry := metrics.Registry()
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	api := router.Group("/api")
	{
		api.POST("/users", func(c *gin.Context) {
			var u domain.User
			if err := c.ShouldBindJSON(&u); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if u.ID == "" {
				u.ID = u.Profile.Username
			}

			if result := social.ValidateUsername(u.ID); !social.Valid(result) {
				c.JSON(http.StatusBadRequest, gin.H{"error": result.(social.ValidationError).Message})
				return
			}
			if result := social.ValidateEmail(u.Profile.Email); !social.Valid(result) {
				c.JSON(http.StatusBadRequest, gin.H{"error": result.(social.ValidationError).Message})
				return
			}

			available, err := repo.IsUsernameAvailable(c.Request.Context(), u.ID)
			if err != nil {
				respondError(c, log, err)
				return
			}
			if !available {
				c.JSON(http.StatusConflict, gin.H{"error": "Username is already taken"})
				return
			}

			if err := repo.CreateUser(c.Request.Context(), u); err != nil {
				respondError(c, log, err)
				return
			}
			c.JSON(http.StatusCreated, u)
		})

		api.GET("/users/:id", func(c *gin.Context) {
			u, err := repo.GetUser(c.Request.Context(), c.Param("id"))
			if err != nil {
				respondError(c, log, err)
				return
			}
			c.JSON(http.StatusOK, u)
		})

		api.PUT("/users/:id", func(c *gin.Context) {
			var u domain.User
			if err := c.ShouldBindJSON(&u); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			u.ID = c.Param("id")

			if err := repo.UpdateUser(c.Request.Context(), u); err != nil {
				respondError(c, log, err)
				return
			}
			c.JSON(http.StatusOK, u)
		})

		api.DELETE("/users/:id", func(c *gin.Context) {
			if err := repo.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
				respondError(c, log, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"status": "deleted"})
		})

		api.GET("/users/:id/profile", func(c *gin.Context) {
			profile, err := repo.GetProfile(c.Request.Context(), c.Param("id"))
			if err != nil {
				respondError(c, log, err)
				return
			}
			c.JSON(http.StatusOK, profile)
		})

		api.GET("/profiles/username/:username", func(c *gin.Context) {
			profile, err := repo.GetProfileByUsername(c.Request.Context(), c.Param("username"))
			if err != nil {
				respondError(c, log, err)
				return
			}
			c.JSON(http.StatusOK, profile)
		})

		api.GET("/availability/username/:username", func(c *gin.Context) {
			available, err := repo.IsUsernameAvailable(c.Request.Context(), c.Param("username"))
			if err != nil {
				respondError(c, log, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"available": available})
		})

		// Relationship mutations
		api.POST("/users/:id/follow/:target", relationshipHandler(repo.FollowUser, log))
		api.POST("/users/:id/unfollow/:target", relationshipHandler(repo.UnfollowUser, log))
		api.POST("/users/:id/block/:target", relationshipHandler(repo.BlockUser, log))
		api.POST("/users/:id/unblock/:target", relationshipHandler(repo.UnblockUser, log))

		api.GET("/users/:id/relationship/:target", func(c *gin.Context) {
			info, err := repo.GetRelationshipInfo(c.Request.Context(), c.Param("id"), c.Param("target"))
			if err != nil {
				respondError(c, log, err)
				return
			}
			c.JSON(http.StatusOK, info)
		})

		// Paged relationship lists
		api.GET("/users/:id/followers", pagedHandler(repo.GetFollowers, log))
		api.GET("/users/:id/following", pagedHandler(repo.GetFollowing, log))
		api.GET("/users/:id/blocked", pagedHandler(repo.GetBlocked, log))
		api.GET("/users/:id/suggested", pagedHandler(repo.GetSuggestedUsers, log))

		api.GET("/users/:id/mutual/:target", func(c *gin.Context) {
			page, size := pageParams(c)
			result, err := repo.GetMutualFollowers(c.Request.Context(), c.Param("id"), c.Param("target"), page, size)
			if err != nil {
				respondError(c, log, err)
				return
			}
			c.JSON(http.StatusOK, result)
		})

		// Search and discovery
		api.GET("/search", func(c *gin.Context) {
			page, size := pageParams(c)
			result, err := repo.SearchProfiles(c.Request.Context(), searchFilter(c), page, size)
			if err != nil {
				respondError(c, log, err)
				return
			}
			c.JSON(http.StatusOK, result)
		})

		api.GET("/discover/new", discoveryHandler(repo.GetNewUsers, log))
		api.GET("/discover/popular", discoveryHandler(repo.GetPopularUsers, log))
		api.GET("/discover/active", discoveryHandler(repo.GetActiveUsers, log))
		api.GET("/discover/verified", discoveryHandler(repo.GetVerifiedUsers, log))
	}
}

func relationshipHandler(op func(ctx context.Context, currentID, targetID string) error, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := op(c.Request.Context(), c.Param("id"), c.Param("target")); err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func pagedHandler(op func(ctx context.Context, userID string, page, size int) (domain.Paging[domain.Profile], error), log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, size := pageParams(c)
		result, err := op(c.Request.Context(), c.Param("id"), page, size)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func discoveryHandler(op func(ctx context.Context, page, size int) (domain.Paging[domain.Profile], error), log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, size := pageParams(c)
		result, err := op(c.Request.Context(), page, size)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func pageParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "20"))
	if err != nil || size < 1 {
		size = 20
	}
	return page, size
}

func searchFilter(c *gin.Context) domain.SearchFilter {
	filter := domain.SearchFilter{
		Query:  c.Query("q"),
		SortBy: domain.SortBy(c.DefaultQuery("sort", string(domain.SortByRelevant))),
		Order:  domain.Order(c.DefaultQuery("order", string(domain.OrderDesc))),
	}

	if v, ok := boolParam(c, "verified"); ok {
		filter.Verified = &v
	}
	if v, ok := boolParam(c, "banned"); ok {
		filter.Banned = &v
	}
	if gender := c.Query("gender"); gender != "" {
		filter.Gender = &gender
	}
	if n, ok := intParam(c, "min_followers"); ok {
		filter.MinFollowers = &n
	}
	if n, ok := intParam(c, "max_followers"); ok {
		filter.MaxFollowers = &n
	}

	return filter
}

func boolParam(c *gin.Context, name string) (bool, bool) {
	raw, ok := c.GetQuery(name)
	if !ok {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}

func intParam(c *gin.Context, name string) (int, bool) {
	raw, ok := c.GetQuery(name)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func respondError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case social.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case social.IsInvalidOperation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Error("Repository operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
