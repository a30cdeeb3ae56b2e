package response

import "github.com/chahin-fh/laboissimlocal/internal/domain"

type ProjectResponse struct {
	domain.Project
	CreatedByName string               `json:"created_by_name"`
	TeamMembers   []TeamMemberResponse `json:"team_members"`
}

type TeamMemberResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

func NewProjectResponse(project domain.Project) ProjectResponse {
	members := make([]TeamMemberResponse, 0, len(project.TeamMembers))
	for _, m := range project.TeamMembers {
		members = append(members, TeamMemberResponse{
			ID:       m.ID,
			Username: m.Username,
			FullName: m.FullName(),
			Email:    m.Email,
		})
	}

	return ProjectResponse{
		Project:       project,
		CreatedByName: project.Creator.FullName(),
		TeamMembers:   members,
	}
}

func NewProjectsResponse(projects []domain.Project) []ProjectResponse {
	resp := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		resp = append(resp, NewProjectResponse(p))
	}

	return resp
}
