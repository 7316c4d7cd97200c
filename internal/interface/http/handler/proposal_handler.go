package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/JULEEP/securitybackend/internal/interface/http/dto"
	"github.com/JULEEP/securitybackend/internal/interface/http/response"
	"github.com/JULEEP/securitybackend/internal/pkg/apperror"
	"github.com/JULEEP/securitybackend/internal/usecase/proposal"
)

type ProposalHandler struct {
	createProposalUC *proposal.CreateProposalUseCase
	updateStatusUC   *proposal.UpdateProposalStatusUseCase
	updateProposalUC *proposal.UpdateProposalUseCase
	getProposalUC    *proposal.GetProposalUseCase
	listProposalsUC  *proposal.ListProposalsUseCase
	deleteProposalUC *proposal.DeleteProposalUseCase
}

func NewProposalHandler(
	createProposalUC *proposal.CreateProposalUseCase,
	updateStatusUC *proposal.UpdateProposalStatusUseCase,
	updateProposalUC *proposal.UpdateProposalUseCase,
	getProposalUC *proposal.GetProposalUseCase,
	listProposalsUC *proposal.ListProposalsUseCase,
	deleteProposalUC *proposal.DeleteProposalUseCase,
) *ProposalHandler {
	return &ProposalHandler{
		createProposalUC: createProposalUC,
		updateStatusUC:   updateStatusUC,
		updateProposalUC: updateProposalUC,
		getProposalUC:    getProposalUC,
		listProposalsUC:  listProposalsUC,
		deleteProposalUC: deleteProposalUC,
	}
}

// Register вешает маршруты предложений на группу /api/proposals.
func (h *ProposalHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/create/:userId", h.CreateProposal)
	rg.GET("/all", h.ListProposals)
	rg.GET("/:proposalId", h.GetProposal)
	rg.PUT("/:proposalId", h.UpdateProposal)
	rg.PATCH("/:proposalId/status", h.UpdateProposalStatus)
	rg.DELETE("/:proposalId", h.DeleteProposal)
}

func (h *ProposalHandler) CreateProposal(c *gin.Context) {
	freelancerID, ok := parseIDParam(c, "userId")
	if !ok {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	// пустое тело разбирается как {}, чтобы use case перечислил все пропущенные поля
	var req dto.CreateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		if apperror.IsValidation(err) {
			response.Fail(c, err, "Error creating proposal")
			return
		}
		response.BadRequest(c, "Invalid request body")
		return
	}

	created, err := h.createProposalUC.Execute(c.Request.Context(), req.ToInput(freelancerID))
	if err != nil {
		response.Fail(c, err, "Error creating proposal")
		return
	}

	response.Created(c, "Proposal created successfully", dto.ToProposalResponse(created))
}

func (h *ProposalHandler) ListProposals(c *gin.Context) {
	proposals, err := h.listProposalsUC.Execute(c.Request.Context())
	if err != nil {
		response.Fail(c, err, "Error fetching proposals")
		return
	}

	response.OK(c, "Proposals retrieved successfully", dto.ToProposalResponses(proposals))
}

func (h *ProposalHandler) GetProposal(c *gin.Context) {
	id, ok := parseIDParam(c, "proposalId")
	if !ok {
		response.BadRequest(c, "Invalid proposal ID")
		return
	}

	p, err := h.getProposalUC.Execute(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err, "Error fetching proposal")
		return
	}

	response.OK(c, "Proposal retrieved successfully", dto.ToProposalResponse(p))
}

func (h *ProposalHandler) UpdateProposal(c *gin.Context) {
	id, ok := parseIDParam(c, "proposalId")
	if !ok {
		response.BadRequest(c, "Invalid proposal ID")
		return
	}

	var values map[string]any
	if err := c.ShouldBindJSON(&values); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.updateProposalUC.Execute(c.Request.Context(), id, values)
	if err != nil {
		response.Fail(c, err, "Error updating proposal")
		return
	}

	response.OK(c, "Proposal updated successfully", dto.ToProposalResponse(updated))
}

func (h *ProposalHandler) UpdateProposalStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "proposalId")
	if !ok {
		response.BadRequest(c, "Invalid proposal ID")
		return
	}

	var req dto.UpdateProposalStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.updateStatusUC.Execute(c.Request.Context(), id, req.Status, req.Notes)
	if err != nil {
		response.Fail(c, err, "Error updating proposal status")
		return
	}

	response.OK(c, "Proposal status updated successfully", dto.ToProposalResponse(updated))
}

func (h *ProposalHandler) DeleteProposal(c *gin.Context) {
	id, ok := parseIDParam(c, "proposalId")
	if !ok {
		response.BadRequest(c, "Invalid proposal ID")
		return
	}

	deleted, err := h.deleteProposalUC.Execute(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err, "Error deleting proposal")
		return
	}

	response.OK(c, "Proposal deleted successfully", dto.ToProposalResponse(deleted))
}
