package topology

// SchemaRegistry returns the built in topology, a Confluent Schema
// Registry cluster where every node runs ZooKeeper, Kafka and the
// Schema Registry from a single image
func SchemaRegistry() *Topology {
	return &Topology{
		Name:        "confluent-schema-registry",
		Description: "Confluent Schema Registry test cluster",
		Groups: []NodeGroup{
			{
				Name:  "registry",
				Nodes: []string{"registry-1"},
				Image: "confluent/schema-registry",
				Ports: []string{"8081"},
			},
		},
		Parameters: []Parameter{
			{
				Name:        "confluent-version",
				Default:     "4.0.0",
				Description: "version of the Confluent platform to run",
			},
			{
				Name:        "registry",
				Default:     "",
				Description: "Docker registry host to pull images from",
			},
			{
				Name:        "namespace",
				Default:     "",
				Description: "image namespace overriding the default",
			},
		},
	}
}
