package resource

import "fmt"

// Kind is the type of a resource that lives inside a VPC.
type Kind int

const (
	NatGateway Kind = iota + 1
	ElasticIp
	InternetGateway
	RouteTableAssociation
	RouteTable
	Instance
	Subnet
	SecurityGroupRule
	SecurityGroup
	NetworkAclEntry
	NetworkAcl
	VpcEndpoint
	Network
)

type kindInfo struct {
	name  string
	stage int
	// async kinds are accepted for deletion immediately but finish in the background
	async bool
	// blocksNetwork is true if the VPC cannot be deleted while a resource of this kind exists
	blocksNetwork bool
}

// kinds is the single source of truth for the deletion order. The stage of a kind
// is its position in the teardown; kinds sharing a stage are deleted in the order
// of their declaration above (e.g. aws_route_table_association before aws_route_table).
var kinds = map[Kind]kindInfo{
	NatGateway:            {name: "aws_nat_gateway", stage: 1, async: true, blocksNetwork: true},
	ElasticIp:             {name: "aws_eip", stage: 1},
	InternetGateway:       {name: "aws_internet_gateway", stage: 2, blocksNetwork: true},
	RouteTableAssociation: {name: "aws_route_table_association", stage: 3},
	RouteTable:            {name: "aws_route_table", stage: 3, blocksNetwork: true},
	Instance:              {name: "aws_instance", stage: 4, async: true, blocksNetwork: true},
	Subnet:                {name: "aws_subnet", stage: 5, blocksNetwork: true},
	SecurityGroupRule:     {name: "aws_security_group_rule", stage: 6},
	SecurityGroup:         {name: "aws_security_group", stage: 6, blocksNetwork: true},
	NetworkAclEntry:       {name: "aws_network_acl_rule", stage: 7},
	NetworkAcl:            {name: "aws_network_acl", stage: 7, blocksNetwork: true},
	VpcEndpoint:           {name: "aws_vpc_endpoint", stage: 8, blocksNetwork: true},
	Network:               {name: "aws_vpc", stage: 9},
}

// Kinds returns all supported kinds in deletion order.
func Kinds() []Kind {
	result := make([]Kind, 0, len(kinds))
	for k := NatGateway; k <= Network; k++ {
		result = append(result, k)
	}
	return result
}

func (k Kind) String() string {
	if info, ok := kinds[k]; ok {
		return info.name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Async reports whether deleting a resource of this kind requires waiting
// for it to reach a terminal state.
func (k Kind) Async() bool {
	return kinds[k].async
}

// BlocksNetwork reports whether a remaining resource of this kind prevents the
// deletion of its VPC.
func (k Kind) BlocksNetwork() bool {
	return kinds[k].blocksNetwork
}

// MarshalText renders a kind by its name in JSON and YAML output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Ref identifies a single resource that is a candidate for deletion.
type Ref struct {
	Kind      Kind   `json:"type" yaml:"type"`
	ID        string `json:"id" yaml:"id"`
	NetworkID string `json:"vpc_id" yaml:"vpc_id"`
	// IsDefault marks resources created by AWS together with the VPC (default security group,
	// default network ACL, main route table association). They are never deleted, only emptied.
	IsDefault bool `json:"default,omitempty" yaml:"default,omitempty"`
	// Parent is the ID of the resource owning this one, if any
	// (e.g. the security group of a rule or the NAT gateway of an elastic IP).
	Parent string            `json:"parent,omitempty" yaml:"parent,omitempty"`
	Attrs  map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

func (r Ref) String() string {
	return r.Kind.String() + "." + r.ID
}

// State is the lifecycle state of a resource as reported by the provider.
type State string

const (
	StatePresent  State = "present"
	StateDeleting State = "deleting"
	StateDeleted  State = "deleted"
)
