package stages

import (
	"github.com/0xa1bed0/dloenv/internal/conda"
	"github.com/0xa1bed0/dloenv/internal/provision"
)

// Channels registers the two community package channels in the fixed
// order (bioconda, then conda-forge) before any dependency install, then
// self-updates conda. The registration order encodes resolution priority
// and must not change.
func Channels() provision.Stage {
	return provision.Stage{
		ID:          StageChannels,
		Description: "Register package channels and upgrade conda",
		Apply: func(cfg provision.Config, st *provision.State) error {
			st.Append(conda.AddChannelCommands(conda.AddedChannels())...)
			st.Append(conda.UpgradeCommand())
			return nil
		},
	}
}
