package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Harsh-BH/judgeworker/internal/domain"
)

// BatchRunner is the subset of evaluator.Evaluator the facade depends
// on, narrowed to an interface for testability.
type BatchRunner interface {
	Evaluate(ctx context.Context, job domain.BatchJob) (domain.BatchResult, error)
}

// Deliverer is the subset of callback.Client the facade depends on.
type Deliverer interface {
	Deliver(ctx context.Context, result domain.BatchResult) error
}

// ExecuteHandler implements the Evaluation Service Facade's single
// entry point: accept a batch job, ack synchronously, evaluate in the
// background, call back exactly once.
type ExecuteHandler struct {
	runner   BatchRunner
	callback Deliverer
	pool     *pool
	logger   *zap.Logger
}

// NewExecuteHandler builds an ExecuteHandler. maxConcurrent bounds how
// many batches this worker evaluates at once.
func NewExecuteHandler(runner BatchRunner, callback Deliverer, maxConcurrent int, logger *zap.Logger) *ExecuteHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExecuteHandler{
		runner:   runner,
		callback: callback,
		pool:     newPool(maxConcurrent),
		logger:   logger,
	}
}

// Execute handles POST /execute.
func (h *ExecuteHandler) Execute(c *gin.Context) {
	var job domain.BatchJob
	if err := c.ShouldBindJSON(&job); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	if err := validateRequest(job); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	release, err := h.pool.acquire()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "worker at capacity, try again later"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"submission_id": job.SubmissionID,
		"status":        "accepted",
	})

	go h.runInBackground(job, release)
}

func (h *ExecuteHandler) runInBackground(job domain.BatchJob, release func()) {
	defer release()

	logger := h.logger.With(zap.String("submission_id", job.SubmissionID), zap.String("language", string(job.Language)))
	ctx := context.Background()

	result, err := h.runner.Evaluate(ctx, job)
	if err != nil {
		logger.Error("httpapi: batch evaluation failed to run", zap.Error(err))
		result = domain.BatchResult{
			SubmissionID:       job.SubmissionID,
			CompilationSuccess: false,
			CompilerOutput:     "internal error evaluating submission",
		}
	}

	if err := h.callback.Deliver(ctx, result); err != nil {
		logger.Error("httpapi: callback delivery failed", zap.Error(err))
	}
}

func validateRequest(job domain.BatchJob) error {
	if !job.Language.IsValid() {
		return domain.ErrInvalidLanguage
	}
	if job.SourceCode == "" && job.SourceCodeBlobKey == "" {
		return domain.ErrEmptySourceCode
	}
	if len(job.TestCases) == 0 {
		return domain.ErrNoTestCases
	}
	return nil
}
