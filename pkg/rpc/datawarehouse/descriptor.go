package datawarehouse

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
)

// Schema of proto/datawarehouse.proto. The descriptor is assembled here instead of
// generated so the package has no protoc step; it is registered globally for reflection.
const (
	FileName    = "datawarehouse.proto"
	PackageName = "grpc.datawarehouse"
	ServiceName = PackageName + ".DataWarehouseService"

	GetWarehouseDataMethodName = "getWarehouseData"
	GetWarehouseDataFullMethod = "/" + ServiceName + "/" + GetWarehouseDataMethodName
)

type schema struct {
	file protoreflect.FileDescriptor

	request protoreflect.MessageDescriptor
	product protoreflect.MessageDescriptor
	data    protoreflect.MessageDescriptor

	requestWarehouseID protoreflect.FieldDescriptor

	productID       protoreflect.FieldDescriptor
	productName     protoreflect.FieldDescriptor
	productQuantity protoreflect.FieldDescriptor

	dataWarehouseID   protoreflect.FieldDescriptor
	dataWarehouseName protoreflect.FieldDescriptor
	dataWarehouseCity protoreflect.FieldDescriptor
	dataProducts      protoreflect.FieldDescriptor
}

var desc = mustBuildSchema()

// FileDescriptor returns the descriptor of datawarehouse.proto
func FileDescriptor() protoreflect.FileDescriptor {
	return desc.file
}

func mustBuildSchema() *schema {
	fd, err := protodesc.NewFile(fileDescriptorProto(), protoregistry.GlobalFiles)
	if err != nil {
		panic(fmt.Sprintf("datawarehouse: invalid descriptor: %v", err))
	}
	if err := protoregistry.GlobalFiles.RegisterFile(fd); err != nil {
		panic(fmt.Sprintf("datawarehouse: register descriptor: %v", err))
	}

	messages := fd.Messages()
	s := &schema{
		file:    fd,
		request: messages.ByName("WarehouseRequest"),
		product: messages.ByName("Product"),
		data:    messages.ByName("WarehouseData"),
	}
	s.requestWarehouseID = s.request.Fields().ByNumber(1)
	s.productID = s.product.Fields().ByNumber(1)
	s.productName = s.product.Fields().ByNumber(2)
	s.productQuantity = s.product.Fields().ByNumber(3)
	s.dataWarehouseID = s.data.Fields().ByNumber(1)
	s.dataWarehouseName = s.data.Fields().ByNumber(2)
	s.dataWarehouseCity = s.data.Fields().ByNumber(3)
	s.dataProducts = s.data.Fields().ByNumber(4)
	return s
}

func fileDescriptorProto() *descriptorpb.FileDescriptorProto {
	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String(FileName),
		Package: proto.String(PackageName),
		Syntax:  proto.String("proto3"),
		Options: &descriptorpb.FileOptions{
			JavaMultipleFiles: proto.Bool(true),
			JavaPackage:       proto.String(PackageName),
			GoPackage:         proto.String("github.com/de-tools/warehouse-atlas/pkg/rpc/datawarehouse"),
		},
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: proto.String("WarehouseRequest"),
				Field: []*descriptorpb.FieldDescriptorProto{
					stringField("warehouseID", 1),
				},
			},
			{
				Name: proto.String("Product"),
				Field: []*descriptorpb.FieldDescriptorProto{
					stringField("productID", 1),
					stringField("productName", 2),
					{
						Name:   proto.String("productQuantity"),
						Number: proto.Int32(3),
						Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
						Type:   descriptorpb.FieldDescriptorProto_TYPE_INT32.Enum(),
					},
				},
			},
			{
				Name: proto.String("WarehouseData"),
				Field: []*descriptorpb.FieldDescriptorProto{
					stringField("warehouseID", 1),
					stringField("warehouseName", 2),
					stringField("warehouseCity", 3),
					{
						Name:     proto.String("productData"),
						Number:   proto.Int32(4),
						Label:    descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum(),
						Type:     descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum(),
						TypeName: proto.String("." + PackageName + ".Product"),
					},
				},
			},
		},
		Service: []*descriptorpb.ServiceDescriptorProto{
			{
				Name: proto.String("DataWarehouseService"),
				Method: []*descriptorpb.MethodDescriptorProto{
					{
						Name:       proto.String(GetWarehouseDataMethodName),
						InputType:  proto.String("." + PackageName + ".WarehouseRequest"),
						OutputType: proto.String("." + PackageName + ".WarehouseData"),
					},
				},
			},
		},
	}
}

func stringField(name string, number int32) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:   proto.String(name),
		Number: proto.Int32(number),
		Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		Type:   descriptorpb.FieldDescriptorProto_TYPE_STRING.Enum(),
	}
}
