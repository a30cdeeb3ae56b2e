package response

import "github.com/chahin-fh/laboissimlocal/internal/domain"

type PublicationResponse struct {
	domain.Publication
	PostedByName  string               `json:"posted_by_name"`
	TaggedMembers []TeamMemberResponse `json:"tagged_members"`
}

func NewPublicationResponse(pub domain.Publication) PublicationResponse {
	members := make([]TeamMemberResponse, 0, len(pub.TaggedMembers))
	for _, m := range pub.TaggedMembers {
		members = append(members, TeamMemberResponse{
			ID:       m.ID,
			Username: m.Username,
			FullName: m.FullName(),
			Email:    m.Email,
		})
	}

	return PublicationResponse{
		Publication:   pub,
		PostedByName:  pub.Poster.FullName(),
		TaggedMembers: members,
	}
}

func NewPublicationsResponse(pubs []domain.Publication) []PublicationResponse {
	resp := make([]PublicationResponse, 0, len(pubs))
	for _, p := range pubs {
		resp = append(resp, NewPublicationResponse(p))
	}

	return resp
}
