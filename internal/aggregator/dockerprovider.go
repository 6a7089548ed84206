package aggregator

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"

	"github.com/hydepwns/phos-go/internal/logging"
)

// DockerProvider implements Provider against the Docker daemon: a
// reconnect loop around ContainerLogs, demuxing its multiplexed
// stdout/stderr frames into the streamer's channel-based contract.
type DockerProvider struct {
	client *client.Client
}

// NewDockerProvider wraps an already-constructed Docker client.
func NewDockerProvider(c *client.Client) *DockerProvider {
	return &DockerProvider{client: c}
}

func (p *DockerProvider) ListContainers(ctx context.Context) ([]ContainerInfo, error) {
	containers, err := p.client.ContainerList(ctx, container.ListOptions{All: true})
	if err != nil {
		return nil, &ProviderError{Kind: ErrRPC, Op: "list_containers", Err: err}
	}
	out := make([]ContainerInfo, 0, len(containers))
	for _, c := range containers {
		name := ""
		if len(c.Names) > 0 {
			name = strings.TrimPrefix(c.Names[0], "/")
		}
		out = append(out, ContainerInfo{
			ID:     c.ID,
			Name:   name,
			Image:  c.Image,
			Status: c.Status,
			Labels: c.Labels,
		})
	}
	return out, nil
}

func (p *DockerProvider) VerifyConnection(ctx context.Context) error {
	if _, err := p.client.Ping(ctx); err != nil {
		return &ProviderError{Kind: ErrConnection, Op: "verify_connection", Err: err}
	}
	return nil
}

// GetLogs streams demultiplexed log lines for id onto a channel, closing
// it when ctx is canceled or, without follow, after one pass over the
// logs. With follow, a dropped stream is reopened every second until ctx
// is canceled. The
// frame parsing (8-byte header, big-endian size) follows the Docker
// engine API's stdout/stderr multiplexing format.
func (p *DockerProvider) GetLogs(ctx context.Context, id string, tail int, follow bool) (<-chan LogLine, error) {
	out := make(chan LogLine, 256)

	tailStr := "all"
	if tail > 0 {
		tailStr = itoa(tail)
	}

	go func() {
		defer close(out)

		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			reader, err := p.client.ContainerLogs(ctx, id, container.LogsOptions{
				ShowStdout: true,
				ShowStderr: true,
				Follow:     follow,
				Tail:       tailStr,
			})
			if err != nil {
				logging.Warn().Err(err).Str("container", id).Msg("aggregator: container logs request failed, retrying")
				select {
				case <-ctx.Done():
					return
				case <-time.After(time.Second):
				}
				continue
			}

			demux(ctx, reader, id, out)
			reader.Close()

			if !follow {
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
		}
	}()

	return out, nil
}

// demux reads Docker's multiplexed stdout/stderr stream from r, emitting
// one LogLine per frame to out until r returns an error or ctx is done.
func demux(ctx context.Context, r io.Reader, containerID string, out chan<- LogLine) {
	buf := make([]byte, 32*1024)
	pending := []byte{}

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		n, err := r.Read(buf)
		if n > 0 {
			pending = append(pending, buf[:n]...)
			pending = emitFrames(ctx, pending, containerID, out)
		}
		if err != nil {
			return
		}
	}
}

func emitFrames(ctx context.Context, data []byte, containerID string, out chan<- LogLine) []byte {
	const headerSize = 8
	offset := 0
	for offset+headerSize <= len(data) {
		size := int(data[offset+4])<<24 | int(data[offset+5])<<16 | int(data[offset+6])<<8 | int(data[offset+7])
		if size < 0 || size > 8*1024*1024 {
			// corrupt frame; drop the rest of this buffer
			return nil
		}
		frameEnd := offset + headerSize + size
		if frameEnd > len(data) {
			break // incomplete frame, wait for more data
		}
		line := strings.TrimRight(string(data[offset+headerSize:frameEnd]), "\n")
		select {
		case out <- LogLine{ContainerID: containerID, Text: line, Timestamp: time.Now()}:
		case <-ctx.Done():
			return nil
		}
		offset = frameEnd
	}
	return data[offset:]
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
