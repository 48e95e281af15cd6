package datawarehouse

import (
	"github.com/de-tools/warehouse-atlas/pkg/models/domain"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
)

func NewWarehouseRequestMessage() *dynamicpb.Message {
	return dynamicpb.NewMessage(desc.request)
}

func NewWarehouseDataMessage() *dynamicpb.Message {
	return dynamicpb.NewMessage(desc.data)
}

func EncodeWarehouseRequest(req domain.WarehouseRequest) *dynamicpb.Message {
	msg := NewWarehouseRequestMessage()
	msg.Set(desc.requestWarehouseID, protoreflect.ValueOfString(req.WarehouseID))
	return msg
}

func DecodeWarehouseRequest(msg protoreflect.Message) domain.WarehouseRequest {
	return domain.WarehouseRequest{
		WarehouseID: msg.Get(desc.requestWarehouseID).String(),
	}
}

// EncodeWarehouseData builds the wire message, products in slice order
func EncodeWarehouseData(data *domain.WarehouseData) *dynamicpb.Message {
	msg := NewWarehouseDataMessage()
	if data == nil {
		return msg
	}
	msg.Set(desc.dataWarehouseID, protoreflect.ValueOfString(data.WarehouseID))
	msg.Set(desc.dataWarehouseName, protoreflect.ValueOfString(data.WarehouseName))
	msg.Set(desc.dataWarehouseCity, protoreflect.ValueOfString(data.WarehouseCity))

	if len(data.Products) == 0 {
		return msg
	}
	list := msg.Mutable(desc.dataProducts).List()
	for _, p := range data.Products {
		elem := list.NewElement()
		product := elem.Message()
		product.Set(desc.productID, protoreflect.ValueOfString(p.ProductID))
		product.Set(desc.productName, protoreflect.ValueOfString(p.ProductName))
		product.Set(desc.productQuantity, protoreflect.ValueOfInt32(p.ProductQuantity))
		list.Append(elem)
	}
	return msg
}

func DecodeWarehouseData(msg protoreflect.Message) *domain.WarehouseData {
	list := msg.Get(desc.dataProducts).List()
	products := make([]domain.Product, 0, list.Len())
	for i := 0; i < list.Len(); i++ {
		product := list.Get(i).Message()
		products = append(products, domain.Product{
			ProductID:       product.Get(desc.productID).String(),
			ProductName:     product.Get(desc.productName).String(),
			ProductQuantity: int32(product.Get(desc.productQuantity).Int()),
		})
	}
	return &domain.WarehouseData{
		WarehouseID:   msg.Get(desc.dataWarehouseID).String(),
		WarehouseName: msg.Get(desc.dataWarehouseName).String(),
		WarehouseCity: msg.Get(desc.dataWarehouseCity).String(),
		Products:      products,
	}
}

// MarshalWarehouseData encodes data deterministically
func MarshalWarehouseData(data *domain.WarehouseData) ([]byte, error) {
	return proto.MarshalOptions{Deterministic: true}.Marshal(EncodeWarehouseData(data))
}

func UnmarshalWarehouseData(b []byte) (*domain.WarehouseData, error) {
	msg := NewWarehouseDataMessage()
	if err := proto.Unmarshal(b, msg); err != nil {
		return nil, err
	}
	return DecodeWarehouseData(msg), nil
}
