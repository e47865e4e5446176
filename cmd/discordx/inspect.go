package main

import (
	"fmt"
	"time"

	"github.com/questx-lab/discordx/pkg/discord"
	"github.com/urfave/cli/v2"
)

const populationTimeout = 30 * time.Second

func (s *srv) guild(ct *cli.Context) (*discord.Guild, error) {
	if ct.NArg() < 1 {
		return nil, fmt.Errorf("missing guild id")
	}

	guild, err := s.client.FetchGuild(s.ctx, ct.Args().Get(0))
	if err != nil {
		return nil, err
	}

	for _, ch := range []<-chan struct{}{guild.Roles.Populated(), guild.Channels.Populated(), guild.Members.Populated()} {
		select {
		case <-ch:
		case <-time.After(populationTimeout):
			return nil, fmt.Errorf("guild %s is not populated after %s", guild.ID, populationTimeout)
		}
	}

	return guild, nil
}

func (s *srv) listChannels(ct *cli.Context) error {
	if err := s.boot(ct); err != nil {
		return err
	}

	guild, err := s.guild(ct)
	if err != nil {
		return err
	}

	w := ct.App.Writer
	channels := guild.Channels.Cache().Values()
	s.client.RLock()
	defer s.client.RUnlock()

	fmt.Fprintf(w, "%s (%d channels)\n", guild.Name, len(channels))
	for _, ch := range channels {
		base := ch.Base()
		if base.ParentID != "" {
			continue
		}

		fmt.Fprintf(w, "%s\t%s\n", base.ID, base.Name)
		for _, child := range channels {
			if child.Base().ParentID == base.ID {
				fmt.Fprintf(w, "  %s\t%s\n", child.Base().ID, child.Base().Name)
			}
		}
	}

	return nil
}

func (s *srv) showMember(ct *cli.Context) error {
	if err := s.boot(ct); err != nil {
		return err
	}

	if ct.NArg() < 2 {
		return fmt.Errorf("missing user id")
	}

	guild, err := s.guild(ct)
	if err != nil {
		return err
	}

	members, err := guild.Members.Fetch(s.ctx, ct.Args().Get(1))
	if err != nil {
		return err
	}

	member, ok := members.First()
	if !ok {
		return fmt.Errorf("member %s not found", ct.Args().Get(1))
	}

	w := ct.App.Writer
	fmt.Fprintf(w, "%s (%s)\n", member.DisplayName(), member.ID())
	roles := member.Roles.Cache().Values()
	s.client.RLock()
	for _, role := range roles {
		fmt.Fprintf(w, "  role %s\t%s\tposition %d\n", role.ID, role.Name, role.Position)
	}
	s.client.RUnlock()
	fmt.Fprintf(w, "permissions %s\n", member.Roles.Permissions())
	fmt.Fprintf(w, "kickable %t, banneable %t\n", member.Kickable(), member.Banneable())
	return nil
}
