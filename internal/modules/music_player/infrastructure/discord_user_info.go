package infrastructure

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/application/ports"
)

// MemberFetcher is the subset of the Discord session used to look up members.
type MemberFetcher interface {
	GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error)
}

// DiscordUserInfoProvider resolves requester names for notifications.
// Cached members are preferred over a REST lookup.
type DiscordUserInfoProvider struct {
	state   *discordgo.State
	members MemberFetcher
}

var _ ports.UserInfoProvider = (*DiscordUserInfoProvider)(nil)

// NewDiscordUserInfoProvider creates a new DiscordUserInfoProvider. state may be nil.
func NewDiscordUserInfoProvider(state *discordgo.State, members MemberFetcher) *DiscordUserInfoProvider {
	return &DiscordUserInfoProvider{state: state, members: members}
}

// GetUserInfo returns display info for a member of the guild.
func (p *DiscordUserInfoProvider) GetUserInfo(
	guildID, userID snowflake.ID,
) (*ports.UserInfo, error) {
	member := p.cachedMember(guildID, userID)
	if member == nil {
		var err error
		member, err = p.members.GuildMember(guildID.String(), userID.String())
		if err != nil {
			return nil, fmt.Errorf("failed to fetch guild member: %w", err)
		}
	}
	if member.User == nil {
		return nil, fmt.Errorf("member %s has no user", userID)
	}

	return &ports.UserInfo{
		DisplayName: displayName(member),
		AvatarURL:   member.AvatarURL(""),
	}, nil
}

func (p *DiscordUserInfoProvider) cachedMember(guildID, userID snowflake.ID) *discordgo.Member {
	if p.state == nil {
		return nil
	}
	member, err := p.state.Member(guildID.String(), userID.String())
	if err != nil {
		return nil
	}
	return member
}

// displayName prefers the guild nickname, then the global display name.
func displayName(member *discordgo.Member) string {
	if member.Nick != "" {
		return member.Nick
	}
	if member.User.GlobalName != "" {
		return member.User.GlobalName
	}
	return member.User.Username
}
