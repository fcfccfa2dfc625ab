package daemon

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/charlie0129/battinfo/pkg/channel"
	"github.com/charlie0129/battinfo/pkg/config"
	"github.com/charlie0129/battinfo/pkg/version"
)

// checkChannel aborts with 404 unless the :name parameter is the
// configured channel.
func (s *Server) checkChannel(c *gin.Context) bool {
	name := c.Param("name")
	if name == s.conf.ChannelName() {
		return true
	}

	err := fmt.Errorf("no channel named %q", name)
	c.IndentedJSON(http.StatusNotFound, err.Error())
	_ = c.AbortWithError(http.StatusNotFound, err)
	return false
}

// invoke answers a method call. Every outcome of the call itself,
// including not-implemented, is a 200 carrying the response envelope.
func (s *Server) invoke(c *gin.Context) {
	if !s.checkChannel(c) {
		return
	}

	var call channel.MethodCall
	if err := c.ShouldBindJSON(&call); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	resp := s.handler.Load().HandleCall(call)
	c.JSON(http.StatusOK, resp)
}

func (s *Server) getMethods(c *gin.Context) {
	if !s.checkChannel(c) {
		return
	}

	c.IndentedJSON(http.StatusOK, s.handler.Load().Methods())
}

func (s *Server) getPlatformVersion(c *gin.Context) {
	resp := s.handler.Load().Handle(channel.MethodGetPlatformVersion, nil)
	c.IndentedJSON(http.StatusOK, resp.Result)
}

func (s *Server) getBatteryLevel(c *gin.Context) {
	resp := s.handler.Load().Handle(channel.MethodGetBatteryLevel, nil)
	if err := resp.Err(); err != nil {
		c.IndentedJSON(http.StatusServiceUnavailable, resp.Message)
		_ = c.AbortWithError(http.StatusServiceUnavailable, err)
		return
	}

	c.IndentedJSON(http.StatusOK, resp.Result)
}

func (s *Server) getConfig(c *gin.Context) {
	fc, err := config.NewRawFileConfigFromConfig(s.conf)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.IndentedJSON(http.StatusOK, fc)
}

func getVersion(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, version.Version)
}
