package main

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/teris-io/shortid"

	"github.com/subtide/subtitle-flows/environment"
	"github.com/subtide/subtitle-flows/paths"
	"github.com/subtide/subtitle-flows/workflows"
	"go.temporal.io/sdk/client"
)

func getTemporalClient() (client.Client, error) {
	return client.Dial(client.Options{
		HostPort:  os.Getenv("TEMPORAL_HOST_PORT"),
		Namespace: os.Getenv("TEMPORAL_NAMESPACE"),
	})
}

func getQueue() string {
	queue := os.Getenv("QUEUE")
	if queue == "" {
		queue = environment.QueueWorker
	}
	return queue
}

type TriggerServer struct {
	wfClient client.Client
	sid      *shortid.Shortid
}

// uploadHandler receives a file and places it in a fresh workspace folder,
// returning the internal path the workflow endpoints accept.
func (s *TriggerServer) uploadHandler(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := s.sid.Generate()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	destination := paths.New(paths.WorkspaceDrive, filepath.Join("uploads", id, paths.FixFilename(file.Filename)))
	err = os.MkdirAll(filepath.Dir(destination.Local()), os.ModePerm)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	err = c.SaveUploadedFile(file, destination.Local())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"path": destination.Local()})
}

type generateSubtitlesRequest struct {
	VideoFilePath   string `json:"videoFilePath" binding:"required"`
	Language        string `json:"language"`
	DestinationPath string `json:"destinationPath" binding:"required"`
}

func (s *TriggerServer) generateSubtitlesHandler(c *gin.Context) {
	var req generateSubtitlesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	workflowOptions := client.StartWorkflowOptions{
		ID:        "generate-subtitles-" + uuid.NewString(),
		TaskQueue: getQueue(),
	}

	res, err := s.wfClient.ExecuteWorkflow(c, workflowOptions, workflows.GenerateSubtitlesFile, workflows.GenerateSubtitlesFileInput{
		VideoFilePath:   req.VideoFilePath,
		Language:        req.Language,
		DestinationPath: req.DestinationPath,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"workflowId": res.GetID()})
}

type burnInRequest struct {
	VideoFilePath    string `json:"videoFilePath" binding:"required"`
	SubtitleFilePath string `json:"subtitleFilePath" binding:"required"`
	StyleFilePath    string `json:"styleFilePath"`
	FontFilePath     string `json:"fontFilePath"`
}

func (s *TriggerServer) burnInHandler(c *gin.Context) {
	var req burnInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	workflowOptions := client.StartWorkflowOptions{
		ID:        "subtitle-burnin-" + uuid.NewString(),
		TaskQueue: getQueue(),
	}

	res, err := s.wfClient.ExecuteWorkflow(c, workflowOptions, workflows.SubtitleBurnInFile, workflows.SubtitleBurnInFileInput{
		VideoFilePath:    req.VideoFilePath,
		SubtitleFilePath: req.SubtitleFilePath,
		StyleFilePath:    req.StyleFilePath,
		FontFilePath:     req.FontFilePath,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"workflowId": res.GetID()})
}

// resultHandler blocks until the workflow completes and streams the produced
// file back to the caller.
func (s *TriggerServer) resultHandler(c *gin.Context) {
	workflowID := c.Param("id")

	run := s.wfClient.GetWorkflow(c, workflowID, "")

	var resultPath string
	switch {
	case strings.HasPrefix(workflowID, "generate-subtitles"):
		result := &workflows.GenerateSubtitlesFileResult{}
		if err := run.Get(c, result); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		resultPath = result.SubtitleFilePath
	default:
		result := &workflows.SubtitleBurnInFileResult{}
		if err := run.Get(c, result); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		resultPath = result.VideoFilePath
	}

	f, err := os.Open(resultPath)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	c.Header("Content-Disposition", "attachment; filename="+filepath.Base(resultPath))
	_, _ = io.Copy(c.Writer, f)
}

func main() {
	wfClient, err := getTemporalClient()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to temporal")
	}
	defer wfClient.Close()

	sid, err := shortid.New(1, shortid.DefaultABC, 2342)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create id generator")
	}

	server := &TriggerServer{
		wfClient: wfClient,
		sid:      sid,
	}

	router := gin.Default()
	router.POST("/upload", server.uploadHandler)
	router.POST("/workflows/generate-subtitles", server.generateSubtitlesHandler)
	router.POST("/workflows/burn-in", server.burnInHandler)
	router.GET("/workflows/:id/result", server.resultHandler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	err = router.Run(":" + port)
	if err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
