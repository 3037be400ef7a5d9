// Copyright 2025 The CoolAMQP Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package common

const (
	// App is the library/CLI name, used as the default Prometheus namespace.
	App = "coolamqp"

	// Version is the library version.
	Version = "v0.1.0"

	// DefaultFrameMax is the frame-max proposed to the broker before
	// negotiation; negotiated values are clamped to MinFrameMax, not to this.
	DefaultFrameMax = 131072

	// MinFrameMax is the lowest frame-max the protocol allows (AMQP 0-9-1 §4.2.6).
	MinFrameMax = 4096

	// DefaultHeartbeat is the heartbeat interval, in seconds, proposed
	// before negotiation.
	DefaultHeartbeat = 60

	// DefaultChannelMax is the channel-max proposed before negotiation.
	DefaultChannelMax = 2047

	// ReadWriteBlockSize is the chunk size used for a single socket read in
	// the I/O reactor's receive loop.
	ReadWriteBlockSize = 4096
)
